package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mesh-intelligence/editions/pkg/editions"
	"github.com/mesh-intelligence/editions/pkg/types"
)

// statusFor maps ledger errors to HTTP status codes. Authorization failures
// are 403, missing tokens 404, malformed requests 400, and state conflicts
// (latches, ceilings, pauses) 409.
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrTokenUndefined):
		return http.StatusNotFound
	case errors.Is(err, types.ErrNotOperator),
		errors.Is(err, types.ErrNotOwner),
		errors.Is(err, types.ErrNotAdmin):
		return http.StatusForbidden
	case errors.Is(err, types.ErrBadValue),
		errors.Is(err, types.ErrBadQuantity):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrInsufficientBalance),
		errors.Is(err, types.ErrMaxEditionsReached),
		errors.Is(err, types.ErrOperatorsUnsupported),
		errors.Is(err, types.ErrPaused),
		errors.Is(err, types.ErrLocked),
		errors.Is(err, types.ErrSaleStarted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorBody is the JSON error envelope. Code carries the stable wire code
// when the error is one of the named ledger outcomes.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: err.Error(), Code: types.WireCode(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decode reads the request body into dst, rejecting unknown fields.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// finish records the call outcome and writes the response: the ledger error
// mapped to a status, or 200 with an ok body.
func (s *Server) finish(w http.ResponseWriter, operation string, err error) {
	s.metrics.observe(operation, err)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type transferRequest struct {
	Groups []types.TransferGroup `json:"groups"`
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.finish(w, "transfer", s.ledger.Transfer(s.call(r, 0), req.Groups))
}

type balanceOfRequest struct {
	Requests []types.BalanceRequest `json:"requests"`
	Callback string                 `json:"callback"`
}

func (s *Server) handleBalanceOf(w http.ResponseWriter, r *http.Request) {
	var req balanceOfRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sink := s.webhookSink(r.Context(), req.Callback)
	err := s.ledger.BalanceOf(s.call(r, 0), req.Requests, sink)
	s.metrics.observe("balance_of", err)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			// Not a ledger outcome: the destination refused delivery.
			status = http.StatusBadGateway
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "delivered"})
}

type operatorsRequest struct {
	Updates []types.OperatorUpdate `json:"updates"`
}

func (s *Server) handleUpdateOperators(w http.ResponseWriter, r *http.Request) {
	var req operatorsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.finish(w, "update_operators", s.ledger.UpdateOperators(s.call(r, 0), req.Updates))
}

type mintRequest struct {
	Amount  int64       `json:"amount"`
	Payment types.Mutez `json:"payment"`
}

func (s *Server) handleMint(w http.ResponseWriter, r *http.Request) {
	var req mintRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	err := s.ledger.Mint(s.call(r, req.Payment), req.Amount)
	s.metrics.observe("mint", err)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	s.metrics.Minted.Add(float64(req.Amount))
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"total_issued": s.ledger.CountTokens(),
	})
}

type mintParametersRequest struct {
	Price       types.Mutez `json:"price"`
	MaxEditions uint64      `json:"max_editions"`
}

func (s *Server) handleSetMintParameters(w http.ResponseWriter, r *http.Request) {
	var req mintParametersRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.finish(w, "set_mint_parameters", s.ledger.SetMintParameters(s.call(r, 0), req.Price, req.MaxEditions))
}

func (s *Server) handleSetAdministrator(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Administrator types.Address `json:"administrator"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.finish(w, "set_administrator", s.ledger.SetAdministrator(s.call(r, 0), req.Administrator))
}

func (s *Server) handleSetPause(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Paused bool `json:"paused"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.finish(w, "set_pause", s.ledger.SetPause(s.call(r, 0), req.Paused))
}

func (s *Server) handleLock(w http.ResponseWriter, r *http.Request) {
	s.finish(w, "lock", s.ledger.Lock(s.call(r, 0)))
}

func (s *Server) handleSetScript(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Script string `json:"script"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.finish(w, "set_script", s.ledger.SetScript(s.call(r, 0), []byte(req.Script)))
}

func (s *Server) handleSetBaseURI(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BaseURI string `json:"base_uri"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.finish(w, "set_base_uri", s.ledger.SetBaseURI(s.call(r, 0), []byte(req.BaseURI)))
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Destination types.Address `json:"destination"`
		Amount      types.Mutez   `json:"amount"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.finish(w, "withdraw", s.ledger.Withdraw(s.call(r, 0), req.Destination, req.Amount))
}

// tokenIDParam parses the {id} route parameter.
func tokenIDParam(r *http.Request) (types.TokenID, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, types.ErrTokenUndefined
	}
	return types.TokenID(id), nil
}

func (s *Server) handleListTokens(w http.ResponseWriter, r *http.Request) {
	ids := make([]types.TokenID, 0)
	for id := range s.ledger.TokenIDs() {
		ids = append(ids, id)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":     s.ledger.CountTokens(),
		"token_ids": ids,
	})
}

func (s *Server) handleGetToken(w http.ResponseWriter, r *http.Request) {
	id, err := tokenIDParam(r)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	owner, err := s.ledger.OwnerOf(id)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	md, err := s.ledger.TokenMetadata(id)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, types.Token{ID: id, Owner: owner, Commitment: md.TokenHash})
}

func (s *Server) handleTokenMetadata(w http.ResponseWriter, r *http.Request) {
	id, err := tokenIDParam(r)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	md, err := s.ledger.TokenMetadata(id)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, md)
}

func (s *Server) handleTotalSupply(w http.ResponseWriter, r *http.Request) {
	id, err := tokenIDParam(r)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	supply, err := s.ledger.TotalSupply(id)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{"total_supply": supply})
}

func (s *Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	owner := types.Address(r.URL.Query().Get("owner"))
	id, err := strconv.ParseUint(r.URL.Query().Get("token_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	balance, err := s.ledger.GetBalance(owner, types.TokenID(id))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{"balance": balance})
}

func (s *Server) handleIsOperator(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id, err := strconv.ParseUint(q.Get("token_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	ok := s.ledger.IsOperator(
		types.Address(q.Get("owner")),
		types.Address(q.Get("operator")),
		types.TokenID(id),
	)
	writeJSON(w, http.StatusOK, map[string]bool{"is_operator": ok})
}

func (s *Server) handleCollectionMetadata(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, editions.Metadata(s.ledger.Options()))
}
