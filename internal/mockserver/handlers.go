package mockserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bizdash/bizdash/internal/domain/analytics"
	"github.com/bizdash/bizdash/internal/domain/crm"
	"github.com/bizdash/bizdash/internal/domain/finance"
	"github.com/bizdash/bizdash/internal/domain/shared"
	"github.com/bizdash/bizdash/internal/domain/trade"
)

// Server carries the handler dependencies
type Server struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewServer creates the handler set over a migrated database
func NewServer(db *gorm.DB, logger *zap.Logger) *Server {
	return &Server{db: db, logger: logger}
}

// response mirrors the envelope the dashboard client decodes
type response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, response{Success: true, Data: data})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, response{Success: true, Message: message})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, response{Success: false, Error: code, Message: message})
}

func pageParams(c *gin.Context) shared.Filter {
	f := shared.DefaultFilter()
	if n, err := strconv.Atoi(c.Query("page")); err == nil {
		f.Page = n
	}
	if n, err := strconv.Atoi(c.Query("limit")); err == nil {
		f.Limit = n
	}
	f.Search = c.Query("search")
	f.Status = c.Query("status")
	return f.Normalize()
}

func paginate[E any](db *gorm.DB, f shared.Filter, out *[]E) (shared.Paginated[E], error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return shared.Paginated[E]{}, err
	}
	err := db.Offset((f.Page - 1) * f.Limit).Limit(f.Limit).Find(out).Error
	if err != nil {
		return shared.Paginated[E]{}, err
	}
	return shared.NewPaginated(*out, total, f.Page, f.Limit), nil
}

// loginRequest is the dev login body; any credentials are accepted
type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login issues a development token
func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_CREDENTIALS", "Email and password are required")
		return
	}
	respondOK(c, gin.H{
		"token": "dev-token-" + uuid.NewString(),
		"user": gin.H{
			"email": req.Email,
			"role":  "admin",
		},
	})
}

// Clients

// clientPayload carries a client create/update body with validation tags
type clientPayload struct {
	ClientName    string `json:"clientName" binding:"required"`
	ClientContact string `json:"clientContact" binding:"omitempty,inphone"`
	ClientEmail   string `json:"clientEmail" binding:"omitempty,email"`
	Address       string `json:"address"`
	GST           string `json:"gst" binding:"omitempty,gstin"`
	PAN           string `json:"pan" binding:"omitempty,pan"`
	Status        string `json:"status"`
}

func (p *clientPayload) apply(c *crm.Client) {
	c.ClientName = p.ClientName
	c.ClientContact = p.ClientContact
	c.ClientEmail = p.ClientEmail
	c.Address = p.Address
	c.GST = p.GST
	c.PAN = p.PAN
	if p.Status != "" {
		c.Status = crm.ClientStatus(p.Status)
	}
	c.SyncAliases()
}

func (s *Server) ListClients(c *gin.Context) {
	f := pageParams(c)
	q := s.db.Model(&crm.Client{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("client_name LIKE ? OR client_email LIKE ? OR client_contact LIKE ?", like, like, like)
	}

	var clients []crm.Client
	page, err := paginate(q, f, &clients)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "QUERY_FAILED", err.Error())
		return
	}
	for i := range page.Data {
		page.Data[i].SyncAliases()
	}
	respondOK(c, page)
}

func (s *Server) GetClient(c *gin.Context) {
	var client crm.Client
	if err := s.db.First(&client, "id = ?", c.Param("id")).Error; err != nil {
		s.notFoundOrError(c, err, "Client not found")
		return
	}
	client.SyncAliases()
	respondOK(c, client)
}

func (s *Server) CreateClient(c *gin.Context) {
	var payload clientPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	client := crm.Client{
		ID:        uuid.NewString(),
		TenantID:  c.GetHeader("X-Tenant-ID"),
		Status:    crm.ClientStatusActive,
		EntryDate: time.Now(),
	}
	payload.apply(&client)

	if err := s.db.Create(&client).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "CREATE_FAILED", err.Error())
		return
	}
	respondOK(c, client)
}

func (s *Server) UpdateClient(c *gin.Context) {
	var client crm.Client
	if err := s.db.First(&client, "id = ?", c.Param("id")).Error; err != nil {
		s.notFoundOrError(c, err, "Client not found")
		return
	}

	var payload clientPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}
	payload.apply(&client)

	if err := s.db.Save(&client).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "UPDATE_FAILED", err.Error())
		return
	}
	respondOK(c, client)
}

func (s *Server) DeleteClient(c *gin.Context) {
	result := s.db.Delete(&crm.Client{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		respondError(c, http.StatusInternalServerError, "DELETE_FAILED", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Client not found")
		return
	}
	respondMessage(c, "deleted")
}

// Leads

func (s *Server) ListLeads(c *gin.Context) {
	f := pageParams(c)
	q := s.db.Model(&crm.Lead{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if priority := c.Query("priority"); priority != "" {
		q = q.Where("priority = ?", priority)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR contact LIKE ?", like, like)
	}

	var leads []crm.Lead
	page, err := paginate(q, f, &leads)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "QUERY_FAILED", err.Error())
		return
	}
	respondOK(c, page)
}

func (s *Server) GetLead(c *gin.Context) {
	var lead crm.Lead
	if err := s.db.First(&lead, "id = ?", c.Param("id")).Error; err != nil {
		s.notFoundOrError(c, err, "Lead not found")
		return
	}
	respondOK(c, lead)
}

func (s *Server) CreateLead(c *gin.Context) {
	var lead crm.Lead
	if err := c.ShouldBindJSON(&lead); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}
	if lead.ID == "" {
		lead.ID = uuid.NewString()
	}
	if lead.Status == "" {
		lead.Status = crm.LeadStatusNew
	}
	if lead.Priority == "" {
		lead.Priority = crm.LeadPriorityMedium
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now()
	}

	if err := s.db.Create(&lead).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "CREATE_FAILED", err.Error())
		return
	}
	respondOK(c, lead)
}

func (s *Server) UpdateLead(c *gin.Context) {
	var existing crm.Lead
	if err := s.db.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		s.notFoundOrError(c, err, "Lead not found")
		return
	}

	var lead crm.Lead
	if err := c.ShouldBindJSON(&lead); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}
	lead.ID = existing.ID
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = existing.CreatedAt
	}

	if err := s.db.Save(&lead).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "UPDATE_FAILED", err.Error())
		return
	}
	respondOK(c, lead)
}

func (s *Server) DeleteLead(c *gin.Context) {
	result := s.db.Delete(&crm.Lead{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		respondError(c, http.StatusInternalServerError, "DELETE_FAILED", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Lead not found")
		return
	}
	respondMessage(c, "deleted")
}

// Orders

func (s *Server) ListOrders(c *gin.Context) {
	f := pageParams(c)
	q := s.db.Model(&trade.Order{}).Preload("Items")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if ps := c.Query("paymentStatus"); ps != "" {
		q = q.Where("payment_status = ?", ps)
	}
	if cid := c.Query("clientId"); cid != "" {
		q = q.Where("client_id = ?", cid)
	}
	if f.Search != "" {
		q = q.Where("order_number LIKE ?", "%"+f.Search+"%")
	}

	var orders []trade.Order
	page, err := paginate(q, f, &orders)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "QUERY_FAILED", err.Error())
		return
	}
	respondOK(c, page)
}

func (s *Server) GetOrder(c *gin.Context) {
	var order trade.Order
	err := s.db.Preload("Items").First(&order, "order_number = ?", c.Param("id")).Error
	if err != nil {
		s.notFoundOrError(c, err, "Order not found")
		return
	}
	respondOK(c, order)
}

func (s *Server) CreateOrder(c *gin.Context) {
	var order trade.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}
	if order.OrderNumber == "" {
		order.OrderNumber = trade.NewOrderNumber(time.Now())
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now()
	}
	if order.Status == "" {
		order.Status = trade.OrderStatusPending
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.NewString()
		}
		order.Items[i].OrderNumber = order.OrderNumber
	}
	order.Recalculate()

	if err := s.db.Create(&order).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "CREATE_FAILED", err.Error())
		return
	}
	respondOK(c, order)
}

func (s *Server) UpdateOrder(c *gin.Context) {
	var existing trade.Order
	if err := s.db.First(&existing, "order_number = ?", c.Param("id")).Error; err != nil {
		s.notFoundOrError(c, err, "Order not found")
		return
	}

	var order trade.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}
	order.OrderNumber = existing.OrderNumber
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.NewString()
		}
		order.Items[i].OrderNumber = order.OrderNumber
	}
	order.Recalculate()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&trade.OrderItem{}, "order_number = ?", order.OrderNumber).Error; err != nil {
			return err
		}
		return tx.Save(&order).Error
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "UPDATE_FAILED", err.Error())
		return
	}
	respondOK(c, order)
}

func (s *Server) DeleteOrder(c *gin.Context) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&trade.OrderItem{}, "order_number = ?", c.Param("id")).Error; err != nil {
			return err
		}
		result := tx.Delete(&trade.Order{}, "order_number = ?", c.Param("id"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DELETE_FAILED", err.Error())
		return
	}
	respondMessage(c, "deleted")
}

// Transactions

func (s *Server) ListTransactions(c *gin.Context) {
	f := pageParams(c)
	q := s.db.Model(&finance.Transaction{})
	if kind := c.Query("type"); kind != "" {
		q = q.Where("type = ?", kind)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("category LIKE ? OR description LIKE ? OR order_number LIKE ?", like, like, like)
	}

	var txs []finance.Transaction
	page, err := paginate(q, f, &txs)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "QUERY_FAILED", err.Error())
		return
	}
	respondOK(c, page)
}

func (s *Server) CreateTransaction(c *gin.Context) {
	var tx finance.Transaction
	if err := c.ShouldBindJSON(&tx); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}

	if err := s.db.Create(&tx).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "CREATE_FAILED", err.Error())
		return
	}
	respondOK(c, tx)
}

func (s *Server) DeleteTransaction(c *gin.Context) {
	result := s.db.Delete(&finance.Transaction{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		respondError(c, http.StatusInternalServerError, "DELETE_FAILED", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Transaction not found")
		return
	}
	respondMessage(c, "deleted")
}

// Aggregates

func (s *Server) DashboardStats(c *gin.Context) {
	var stats analytics.DashboardStats

	var clients []crm.Client
	if err := s.db.Find(&clients).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "QUERY_FAILED", err.Error())
		return
	}
	for i := range clients {
		stats.TotalClients++
		if clients[i].IsActive() {
			stats.ActiveClients++
		}
	}

	var orders []trade.Order
	if err := s.db.Find(&orders).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "QUERY_FAILED", err.Error())
		return
	}
	for i := range orders {
		stats.TotalOrders++
		if orders[i].Status == trade.OrderStatusPending {
			stats.PendingOrders++
		}
		stats.TotalRevenue = stats.TotalRevenue.Add(orders[i].PaidAmount)
		stats.OutstandingBalance = stats.OutstandingBalance.Add(orders[i].BalanceAmount)
	}

	var newLeads int64
	if err := s.db.Model(&crm.Lead{}).Where("status = ?", crm.LeadStatusNew).Count(&newLeads).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "QUERY_FAILED", err.Error())
		return
	}
	stats.NewLeads = int(newLeads)

	respondOK(c, stats)
}

func (s *Server) FinanceSummary(c *gin.Context) {
	var txs []finance.Transaction
	if err := s.db.Find(&txs).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "QUERY_FAILED", err.Error())
		return
	}
	respondOK(c, finance.Summarize(txs))
}

func (s *Server) notFoundOrError(c *gin.Context, err error, message string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", message)
		return
	}
	respondError(c, http.StatusInternalServerError, "QUERY_FAILED", err.Error())
}
