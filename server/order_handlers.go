package server

import (
	"net/http"

	"github.com/taskcart/taskcart/orders"
)

type placeOrderRequest struct {
	Lines     []orders.Line `json:"lines"`
	CardToken string        `json:"card_token"`
}

func (s *Server) PlaceOrderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := mustIdentity(w, r)
		if !ok {
			return
		}

		var req placeOrderRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "malformed request body")
			return
		}

		order, err := s.orders.Place(r.Context(), identity.AccountID, req.Lines, req.CardToken)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, order)
	}
}

func (s *Server) ListOrdersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := mustIdentity(w, r)
		if !ok {
			return
		}

		list, err := s.orders.List(r.Context(), identity.AccountID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) GetOrderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := mustIdentity(w, r)
		if !ok {
			return
		}

		order, err := s.orders.Get(r.Context(), identity.AccountID, r.PathValue("id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, order)
	}
}
