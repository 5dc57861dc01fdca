package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerWaiverRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/users/{username}", handler.GetUser)
	mux.HandleFunc("GET /v1/users/{userID}/leagues", handler.ListUserLeagues)
	mux.HandleFunc("GET /v1/pickups/hot", handler.GetHotPickups)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/pickups", handler.GetLeaguePickups)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/rosters/{rosterID}/analysis", handler.GetTeamAnalysis)
	mux.HandleFunc("POST /v1/leagues/{leagueID}/bids", handler.GetOptimalBid)
}
