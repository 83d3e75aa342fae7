package model

import "time"

type Employee struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Info     string `json:"info"`
	PhotoURL string `json:"photoUrl"`
	IsAccess bool   `json:"isAccess"`
}

type AccessLog struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employeeId"`
	Timestamp  time.Time `json:"timestamp"`
	IsKnown    bool      `json:"isKnown"`

	// EmployeeName is populated by queries that join the employees table.
	EmployeeName string `json:"-"`
}
