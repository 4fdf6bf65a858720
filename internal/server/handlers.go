package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Bni3259/trading-journal/internal/errors"
	"github.com/Bni3259/trading-journal/internal/ledger"
	"github.com/Bni3259/trading-journal/internal/models"
)

const dateLayout = "2006-01-02"

type openTradeRequest struct {
	Ticker     string  `json:"ticker"`
	Quantity   float64 `json:"quantity"`
	EntryPrice float64 `json:"entry_price"`
}

type closeTradeRequest struct {
	ExitPrice   float64 `json:"exit_price"`
	Conclusions string  `json:"conclusions"`
}

type tradeResponse struct {
	ID          int64   `json:"id"`
	Ticker      string  `json:"ticker"`
	EntryDate   string  `json:"entry_date"`
	EntryTime   string  `json:"entry_time"`
	Quantity    float64 `json:"quantity"`
	EntryPrice  float64 `json:"entry_price"`
	Status      string  `json:"status"`
	ExitDate    string  `json:"exit_date,omitempty"`
	ExitPrice   float64 `json:"exit_price,omitempty"`
	Conclusions string  `json:"conclusions,omitempty"`
	ProfitUSD   float64 `json:"profit_usd"`
}

type positionResponse struct {
	tradeResponse
	CurrentPrice *float64 `json:"current_price"`
	PnLUSD       *float64 `json:"pnl_usd"`
	PnLPct       *float64 `json:"pnl_pct"`
	Profit       *bool    `json:"profit_styled"`
}

func toTradeResponse(rec models.TradeRecord) tradeResponse {
	resp := tradeResponse{
		ID:          rec.ID,
		Ticker:      rec.Ticker,
		EntryDate:   rec.OpenedAt.Format(dateLayout),
		EntryTime:   rec.OpenedAt.Format("15:04"),
		Quantity:    rec.Quantity,
		EntryPrice:  rec.EntryPrice,
		Status:      string(rec.Status),
		ExitPrice:   rec.ExitPrice,
		Conclusions: rec.Conclusions,
		ProfitUSD:   rec.ProfitUSD,
	}
	if !rec.ClosedAt.IsZero() {
		resp.ExitDate = rec.ClosedAt.Format(dateLayout)
	}
	return resp
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"trades": s.ledger.Len(),
	})
}

func (s *Server) handleOpenTrade(w http.ResponseWriter, r *http.Request) {
	var req openTradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := s.ledger.OpenPosition(req.Ticker, req.Quantity, req.EntryPrice, time.Now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTradeResponse(*rec))
}

func (s *Server) handleCloseTrade(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid trade id")
		return
	}

	var req closeTradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := s.ledger.ClosePosition(id, req.ExitPrice, time.Now(), req.Conclusions)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTradeResponse(*rec))
}

// handlePositions lists open positions marked to market. Price-feed failure
// degrades the response (null prices) instead of failing the request.
func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	open := s.ledger.ListOpen()

	tickers := make([]string, 0, len(open))
	seen := map[string]bool{}
	for _, rec := range open {
		if !seen[rec.Ticker] {
			seen[rec.Ticker] = true
			tickers = append(tickers, rec.Ticker)
		}
	}

	prices, err := s.feed.LatestPrices(r.Context(), tickers)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Price feed unavailable")
		prices = map[string]float64{}
	}

	positions := make([]positionResponse, 0, len(open))
	for _, rec := range open {
		pos := positionResponse{tradeResponse: toTradeResponse(rec)}
		if current, ok := prices[rec.Ticker]; ok {
			if pnl, err := ledger.Unrealized(rec, current); err == nil {
				c, usd, pct, profit := current, pnl.USD, pnl.Pct, pnl.Profitable()
				pos.CurrentPrice = &c
				pos.PnLUSD = &usd
				pos.PnLPct = &pct
				pos.Profit = &profit
			}
		}
		positions = append(positions, pos)
	}
	writeJSON(w, http.StatusOK, positions)
}

func (s *Server) handleListClosed(w http.ResponseWriter, r *http.Request) {
	var since *time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "since must be YYYY-MM-DD")
			return
		}
		since = &t
	}

	closed := s.ledger.ListClosed(since)
	out := make([]tradeResponse, 0, len(closed))
	for _, rec := range closed {
		out = append(out, toTradeResponse(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := ledger.SummaryStats(s.ledger.ListClosed(nil))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"trades":     stats.Trades,
		"wins":       stats.Wins,
		"losses":     stats.Losses,
		"net_profit": stats.NetProfit,
		"win_rate":   stats.WinRate,
	})
}

func (s *Server) handleEquity(w http.ResponseWriter, r *http.Request) {
	balance := 0.0
	if raw := r.URL.Query().Get("balance"); raw != "" {
		b, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "balance must be a number")
			return
		}
		balance = b
	}

	curve := s.ledger.EquityCurve(balance)
	out := make([]map[string]interface{}, 0, len(curve))
	for _, point := range curve {
		out = append(out, map[string]interface{}{
			"date":   point.Date.Format(dateLayout),
			"equity": point.Equity,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps ledger errors to HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	var verr *errors.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusUnprocessableEntity, verr.Error())
	case errors.Is(err, errors.ErrTradeNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, errors.ErrAlreadyClosed):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
