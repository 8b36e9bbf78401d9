package dto

type AvailableTimesRequest struct {
	Date string `json:"date" query:"date"`
}

type SlotResponse struct {
	Time  string `json:"time"`
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
}

type AvailableTimesResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}
