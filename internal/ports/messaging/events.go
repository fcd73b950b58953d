package messaging

import "time"

// ActivityEvent is the JSON payload sent via SQS to the activity feed queue.
// The id doubles as the worker-side idempotency key.
type ActivityEvent struct {
	ActivityID string    `json:"activityId"`
	EmployeeID string    `json:"employeeId"`
	Kind       string    `json:"kind"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurredAt"`
}

// DigestEvent is the JSON payload sent via SQS for the end-of-day digest queue.
type DigestEvent struct {
	EmployeeID   string    `json:"employeeId"`
	EmployeeName string    `json:"employeeName"`
	ClockOutTime time.Time `json:"clockOutTime"`
}
