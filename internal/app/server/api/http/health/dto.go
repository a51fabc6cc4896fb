package health

type Input struct{}

type Output struct {
	Body HResponse
}

type HResponse struct {
	Status string `json:"status" example:"OK" doc:"Service status"`
}
