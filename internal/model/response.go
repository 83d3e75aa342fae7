package model

// Every response body carries a resultCode so existing dashboard clients can
// branch on it without inspecting HTTP statuses. 1000 and the 1xx codes mean
// success; single digits identify the failure class (see pkg/apierror).

type ResultResponse struct {
	ResultCode int `json:"resultCode"`
}

type ErrorResponse struct {
	ResultCode int    `json:"resultCode"`
	Message    string `json:"message,omitempty"`
}

type UserLoginResponse struct {
	Login         string `json:"login"`
	AccessLayerID int    `json:"accessLayerId"`
	ResultCode    int    `json:"resultCode"`
}

type UserResponse struct {
	ID            int64  `json:"id"`
	Login         string `json:"login"`
	AccessLayerID int    `json:"accessLayer"`
}

type UsersResponse struct {
	Users      []UserResponse `json:"users"`
	Count      int            `json:"count"`
	ResultCode int            `json:"resultCode"`
}

type LogResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Access bool   `json:"access"`
	Time   string `json:"time"`
}

type AccessLogsResponse struct {
	Logs       []LogResponse `json:"logs"`
	Count      int           `json:"count"`
	ResultCode int           `json:"resultCode"`
}

type EmployeesResponse struct {
	Employees  []Employee `json:"employees"`
	Count      int        `json:"count"`
	ResultCode int        `json:"resultCode"`
}

type EmployeeResponse struct {
	Employee   Employee `json:"employee"`
	ResultCode int      `json:"resultCode"`
}
