package request_models

type ChatRequest struct {
	Message string `json:"message"`
}

type ExportQuery struct {
	Format string `form:"format"`
}
