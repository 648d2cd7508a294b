package dto

type SummaryResponse struct {
	Members int64 `json:"members"`
	Players int64 `json:"players"`
	Events  int64 `json:"events"`
	Photos  int64 `json:"photos"`
}
