package footballdata

type Area struct {
	Name string `json:"name"`
}

type CompetitionResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
	Area Area   `json:"area"`
}

type TeamsResponse struct {
	Teams []TeamResponse `json:"teams"`
}

type TeamResponse struct {
	ID        int64            `json:"id"`
	ShortName string           `json:"shortName"`
	TLA       string           `json:"tla"`
	Address   string           `json:"address"`
	Area      Area             `json:"area"`
	Coach     PersonResponse   `json:"coach"`
	Squad     []PersonResponse `json:"squad"`
}

// PersonResponse is a squad player or a coach; a coach may come without id.
type PersonResponse struct {
	ID          *int64 `json:"id"`
	Name        string `json:"name"`
	Position    string `json:"position"`
	DateOfBirth string `json:"dateOfBirth"`
	Nationality string `json:"nationality"`
}

// errorPayload covers both provider error shapes:
// {"message":"...","errorCode":400} and {"error":404,"message":"..."}.
type errorPayload struct {
	Message   string `json:"message"`
	ErrorCode int    `json:"errorCode"`
	Error     int    `json:"error"`
}
