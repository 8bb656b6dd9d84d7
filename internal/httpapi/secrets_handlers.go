package httpapi

import (
	"encoding/json"
	"net/http"
)

type SecretsHandler struct {
	Tokens TokenWriter
}

type setTokenReq struct {
	Source string `json:"source"`
	Token  string `json:"token"`
}

func (h SecretsHandler) SetSourceToken(w http.ResponseWriter, r *http.Request) {
	var req setTokenReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	if err := h.Tokens.SetToken(req.Source, req.Token); err != nil {
		http.Error(w, "failed to store token: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
