package model

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type AddUserRequest struct {
	Login         string `json:"login"`
	Password      string `json:"password"`
	AccessLayerID int    `json:"accessLayerId"`
}

type SetUserPasswordRequest struct {
	Password string `json:"password"`
}

type SetUserAccessLayerRequest struct {
	AccessLayerID int `json:"accessLayerId"`
}

type AddEmployeeRequest struct {
	Name     string `json:"name"`
	Info     string `json:"info"`
	IsAccess bool   `json:"isAccess"`
}

type RecordAccessRequest struct {
	EmployeeID int64 `json:"employeeId"`
	IsKnown    bool  `json:"isKnown"`
}
