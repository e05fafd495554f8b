package models

import (
	"bytes"
	"encoding/json"
)

// User is the admin view of an account.
type User struct {
	ID       int      `json:"id"`
	Username string   `json:"username"`
	IsAdmin  FlexBool `json:"is_admin"`
}

// FlexBool accepts true/false as well as the 0/1 integers the backend
// stores for is_admin.
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "true", "1", `"1"`, `"true"`:
		*f = true
		return nil
	case "false", "0", "null", `"0"`, `"false"`, `""`:
		*f = false
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = n != 0
	return nil
}
