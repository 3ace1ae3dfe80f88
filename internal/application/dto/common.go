package dto

// ErrorResponse Fehlerkörper für HTTP-Antworten.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DataResponse Erfolgskörper mit Nutzdaten ({"success":true,"data":...}).
type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// OK verpackt Nutzdaten im Erfolgskörper.
func OK(data interface{}) DataResponse {
	return DataResponse{Success: true, Data: data}
}
