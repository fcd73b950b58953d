package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

// A simple mock of the room/floor capacity assigner.
type assignment struct {
	Room  string `json:"room"`
	Floor int    `json:"floor"`
}

var rooms = []string{"dev_east", "dev_west", "quiet_corner", "open_space"}

func assignmentHandler(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 2 || parts[0] != "assignments" || parts[1] == "" {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	employeeID := parts[1]

	// Stable room per employee so repeated calls agree
	var sum int
	for _, c := range employeeID {
		sum += int(c)
	}
	a := assignment{Room: rooms[sum%len(rooms)], Floor: 1}

	log.Printf("Assigned room %s to employee %s", a.Room, employeeID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(a)
}

func main() {
	http.HandleFunc("/", assignmentHandler)
	log.Println("Room assigner mock server starting on port 8081...")
	log.Fatal(http.ListenAndServe(":8081", nil))
}
