package domain

type Staff struct {
	ID       int    `json:"id"`
	EventID  int    `json:"eventId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Team     string `json:"team"`
	Position string `json:"position"`
}
