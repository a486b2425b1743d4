package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kristindyulgeryan/stock-market-app/app/database"
	"github.com/kristindyulgeryan/stock-market-app/app/tasks"
)

func NewHandler(userRepo database.UserRepository, watchlistRepo database.WatchlistRepository,
	newsSource NewsSourceInterface, scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		userRepo:      userRepo,
		watchlistRepo: watchlistRepo,
		newsSource:    newsSource,
		scheduler:     scheduler,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if userCount, err := h.userRepo.GetUserCount(); err == nil {
		health["users"] = userCount
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{}

	if userCount, err := h.userRepo.GetUserCount(); err == nil {
		stats["users"] = userCount
	}

	if entryCount, err := h.watchlistRepo.GetEntryCount(); err == nil {
		stats["watchlist_entries"] = entryCount
	}

	c.JSON(http.StatusOK, stats)
}

// GetNews returns a digest preview. With ?symbols=AAPL,MSFT it runs the
// watchlist-scoped path; without it, general market news.
func (h *Handler) GetNews(c *gin.Context) {
	var symbols []string
	if raw := c.Query("symbols"); raw != "" {
		symbols = strings.Split(raw, ",")
	}

	articles, err := h.newsSource.GetNews(c.Request.Context(), symbols)
	if err != nil {
		slog.Error("News fetch failed", "symbols", symbols, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch news"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"total":    len(articles),
	})
}

type createUserRequest struct {
	Email             string `json:"email" binding:"required,email"`
	Name              string `json:"name" binding:"required"`
	Country           string `json:"country"`
	InvestmentGoals   string `json:"investment_goals"`
	RiskTolerance     string `json:"risk_tolerance"`
	PreferredIndustry string `json:"preferred_industry"`
}

func (h *Handler) APICreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user := database.User{
		Email:             strings.ToLower(strings.TrimSpace(req.Email)),
		Name:              strings.TrimSpace(req.Name),
		Country:           req.Country,
		InvestmentGoals:   req.InvestmentGoals,
		RiskTolerance:     req.RiskTolerance,
		PreferredIndustry: req.PreferredIndustry,
	}

	id, err := h.userRepo.CreateUser(user)
	if err != nil {
		slog.Error("Database error", "operation", "create_user", "user", user.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	user.ID = id

	// Registration succeeds even if the welcome email cannot be queued.
	if err := h.scheduler.EnqueueWelcomeEmail(user); err != nil {
		slog.Warn("Failed to enqueue welcome email", "user", user.Email, "error", err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    id,
		"email": user.Email,
	})
}

func (h *Handler) APIGetWatchlist(c *gin.Context) {
	user, ok := h.lookupUser(c)
	if !ok {
		return
	}

	entries, err := h.watchlistRepo.GetEntries(user.ID)
	if err != nil {
		slog.Error("Database error", "operation", "get_watchlist", "user", user.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load watchlist"})
		return
	}

	symbols := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		symbols = append(symbols, gin.H{
			"symbol":   entry.Symbol,
			"company":  entry.Company,
			"added_at": entry.AddedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"email":   user.Email,
		"symbols": symbols,
		"total":   len(symbols),
	})
}

type addWatchlistRequest struct {
	Symbol  string `json:"symbol" binding:"required"`
	Company string `json:"company"`
}

func (h *Handler) APIAddToWatchlist(c *gin.Context) {
	user, ok := h.lookupUser(c)
	if !ok {
		return
	}

	var req addWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.watchlistRepo.AddEntry(user.ID, req.Symbol, req.Company); err != nil {
		slog.Error("Database error", "operation", "add_watchlist_entry", "user", user.Email, "symbol", req.Symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add watchlist entry"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"email":  user.Email,
		"symbol": strings.ToUpper(strings.TrimSpace(req.Symbol)),
	})
}

func (h *Handler) APIRemoveFromWatchlist(c *gin.Context) {
	user, ok := h.lookupUser(c)
	if !ok {
		return
	}

	symbol := c.Param("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing symbol parameter"})
		return
	}

	if err := h.watchlistRepo.RemoveEntry(user.ID, symbol); err != nil {
		slog.Error("Database error", "operation", "remove_watchlist_entry", "user", user.Email, "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove watchlist entry"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) APITriggerDigest(c *gin.Context) {
	enqueued, err := h.scheduler.EnqueueDigestRun()
	if err != nil {
		slog.Error("Failed to enqueue digest run", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enqueue digest run"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"enqueued": enqueued,
	})
}

func (h *Handler) lookupUser(c *gin.Context) (*database.User, bool) {
	email := c.Param("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing email parameter"})
		return nil, false
	}

	user, err := h.userRepo.GetUserByEmail(email)
	if err != nil {
		slog.Error("Database error", "operation", "get_user", "user", email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return nil, false
	}

	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return nil, false
	}

	return user, true
}
