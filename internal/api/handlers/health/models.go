package health

const (
	statusOK          = "OK"
	statusUnavailable = "UNAVAILABLE"
)

// StatusResponse ответ health check
type StatusResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}
