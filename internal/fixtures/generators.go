package fixtures

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizdash/bizdash/internal/domain/content"
	"github.com/bizdash/bizdash/internal/domain/crm"
	"github.com/bizdash/bizdash/internal/domain/finance"
	"github.com/bizdash/bizdash/internal/domain/hr"
	"github.com/bizdash/bizdash/internal/domain/messaging"
	"github.com/bizdash/bizdash/internal/domain/security"
	"github.com/bizdash/bizdash/internal/domain/trade"
)

// Counts controls how many records Seed generates per entity
type Counts struct {
	Clients        int
	Leads          int
	Orders         int
	Transactions   int
	Employees      int
	Consultants    int
	Documents      int
	Templates      int
	Notifications  int
	Channels       int
	SecurityEvents int
}

// DefaultCounts returns the demo data volume
func DefaultCounts() Counts {
	return Counts{
		Clients:        40,
		Leads:          25,
		Orders:         60,
		Transactions:   80,
		Employees:      15,
		Consultants:    8,
		Documents:      30,
		Templates:      6,
		Notifications:  20,
		Channels:       4,
		SecurityEvents: 35,
	}
}

// Generator produces synthetic records. A fixed seed gives a reproducible
// data set across restarts.
type Generator struct {
	faker    *gofakeit.Faker
	tenantID string
}

// NewGenerator creates a generator for the given tenant and seed
func NewGenerator(tenantID string, seed uint64) *Generator {
	return &Generator{
		faker:    gofakeit.New(seed),
		tenantID: tenantID,
	}
}

// Seed fills the store with generated records
func (g *Generator) Seed(s *Store, counts Counts) {
	clientIDs := make([]string, 0, counts.Clients)
	for i := 0; i < counts.Clients; i++ {
		c := g.Client()
		s.Clients.Insert(c)
		clientIDs = append(clientIDs, c.ID)
	}
	for i := 0; i < counts.Leads; i++ {
		s.Leads.Insert(g.Lead())
	}
	orderNumbers := make([]string, 0, counts.Orders)
	for i := 0; i < counts.Orders; i++ {
		var clientID string
		if len(clientIDs) > 0 {
			clientID = clientIDs[g.faker.Number(0, len(clientIDs)-1)]
		}
		o := g.Order(clientID)
		s.Orders.Insert(o)
		orderNumbers = append(orderNumbers, o.OrderNumber)
	}
	for i := 0; i < counts.Transactions; i++ {
		var orderNumber string
		if len(orderNumbers) > 0 && g.faker.Bool() {
			orderNumber = orderNumbers[g.faker.Number(0, len(orderNumbers)-1)]
		}
		s.Transactions.Insert(g.Transaction(orderNumber))
	}
	for i := 0; i < counts.Employees; i++ {
		s.Employees.Insert(g.Employee())
	}
	for i := 0; i < counts.Consultants; i++ {
		s.Consultants.Insert(g.Consultant())
	}
	for i := 0; i < counts.Documents; i++ {
		s.Documents.Insert(g.Document())
	}
	for i := 0; i < counts.Templates; i++ {
		s.Templates.Insert(g.Template())
	}
	for i := 0; i < counts.Notifications; i++ {
		s.Notifications.Insert(g.Notification())
	}
	for i := 0; i < counts.Channels; i++ {
		s.Channels.Insert(g.Channel(i))
	}
	for i := 0; i < counts.SecurityEvents; i++ {
		s.SecurityEvents.Insert(g.SecurityEvent())
	}
}

// pastDate returns a time up to days in the past
func (g *Generator) pastDate(days int) time.Time {
	return time.Now().AddDate(0, 0, -g.faker.Number(0, days))
}

// Client generates a client with valid-format GST and PAN identifiers
func (g *Generator) Client() crm.Client {
	f := g.faker
	pan := strings.ToUpper(fmt.Sprintf("%s%04d%s",
		f.LetterN(5), f.Number(0, 9999), f.LetterN(1)))
	gst := fmt.Sprintf("%02d%s%sZ%s",
		f.Number(1, 37), pan, f.DigitN(1), f.DigitN(1))

	status := crm.ClientStatusActive
	if f.Number(1, 10) > 8 {
		status = crm.ClientStatusInactive
	}

	c := crm.Client{
		ID:            uuid.NewString(),
		TenantID:      g.tenantID,
		ClientName:    f.Company(),
		ClientContact: fmt.Sprintf("9%09d", f.Number(0, 999999999)),
		ClientEmail:   f.Email(),
		Address:       f.Address().Address,
		GST:           gst,
		PAN:           pan,
		Status:        status,
		EntryDate:     g.pastDate(365),
	}
	c.SyncAliases()
	return c
}

var leadStatuses = []crm.LeadStatus{
	crm.LeadStatusNew, crm.LeadStatusCallFollowup, crm.LeadStatusUnreachable,
	crm.LeadStatusUnqualified, crm.LeadStatusConvert, crm.LeadStatusReadyForQuote,
}

var leadPriorities = []crm.LeadPriority{
	crm.LeadPriorityLow, crm.LeadPriorityMedium, crm.LeadPriorityHigh,
}

// Lead generates a sales lead with scoring and an optional followup
func (g *Generator) Lead() crm.Lead {
	f := g.faker
	l := crm.Lead{
		ID:                    uuid.NewString(),
		TenantID:              g.tenantID,
		Name:                  f.Name(),
		Contact:               fmt.Sprintf("9%09d", f.Number(0, 999999999)),
		Email:                 f.Email(),
		Source:                f.RandomString([]string{"referral", "website", "campaign", "cold_call"}),
		Status:                leadStatuses[f.Number(0, len(leadStatuses)-1)],
		Priority:              leadPriorities[f.Number(0, len(leadPriorities)-1)],
		LeadScore:             f.Number(0, 100),
		ConversionProbability: float64(f.Number(0, 100)) / 100,
		CreatedAt:             g.pastDate(90),
	}
	if f.Bool() {
		at := time.Now().AddDate(0, 0, f.Number(-5, 14))
		l.FollowupDate = at.Format("2006-01-02")
		l.FollowupTime = fmt.Sprintf("%02d:%02d", f.Number(9, 17), f.Number(0, 59))
	}
	return l
}

var orderStatuses = []trade.OrderStatus{
	trade.OrderStatusPending, trade.OrderStatusInProgress,
	trade.OrderStatusCompleted, trade.OrderStatusCancelled,
}

// Order generates an order with one to four line items and a consistent
// balance
func (g *Generator) Order(clientID string) trade.Order {
	f := g.faker
	orderDate := g.pastDate(180)

	o := trade.Order{
		OrderNumber: trade.NewOrderNumber(orderDate),
		TenantID:    g.tenantID,
		ClientID:    clientID,
		OrderDate:   orderDate,
		Status:      orderStatuses[f.Number(0, len(orderStatuses)-1)],
		CreatedAt:   orderDate,
	}

	items := f.Number(1, 4)
	for i := 0; i < items; i++ {
		o.Items = append(o.Items, trade.OrderItem{
			ID:          uuid.NewString(),
			OrderNumber: o.OrderNumber,
			Description: f.ProductName(),
			Quantity:    decimal.NewFromInt(int64(f.Number(1, 20))),
			Rate:        decimal.NewFromFloat(f.Price(100, 5000)),
			GSTRate:     decimal.NewFromInt(18),
		})
	}
	o.Recalculate()

	// Pay off a random fraction of the net amount.
	paid := o.NetAmount.Mul(decimal.NewFromInt(int64(f.Number(0, 4)))).Div(decimal.NewFromInt(4))
	o.PaidAmount = paid
	o.Recalculate()
	return o
}

// Transaction generates a ledger entry
func (g *Generator) Transaction(orderNumber string) finance.Transaction {
	f := g.faker
	kind := finance.TransactionTypeIncome
	category := f.RandomString([]string{"order_payment", "consulting", "subscription"})
	if orderNumber == "" && f.Bool() {
		kind = finance.TransactionTypeExpense
		category = f.RandomString([]string{"rent", "salaries", "software", "travel", "utilities"})
	}
	return finance.Transaction{
		ID:          uuid.NewString(),
		TenantID:    g.tenantID,
		Type:        kind,
		Category:    category,
		Amount:      decimal.NewFromFloat(f.Price(500, 100000)),
		OrderNumber: orderNumber,
		Description: f.Sentence(6),
		Date:        g.pastDate(180),
	}
}

var departments = []string{"Accounts", "Sales", "Operations", "Compliance", "IT"}

// Employee generates an HR record with skills and availability
func (g *Generator) Employee() hr.Employee {
	f := g.faker
	e := hr.Employee{
		ID:         uuid.NewString(),
		TenantID:   g.tenantID,
		Name:       f.Name(),
		Email:      f.Email(),
		Phone:      fmt.Sprintf("9%09d", f.Number(0, 999999999)),
		Department: departments[f.Number(0, len(departments)-1)],
		Role:       f.JobTitle(),
		Status:     hr.EmployeeStatusActive,
		JoinDate:   g.pastDate(1000),
		Performance: hr.Performance{
			Rating:            float64(f.Number(20, 50)) / 10,
			CompletedProjects: f.Number(0, 40),
			LastReviewDate:    g.pastDate(180),
		},
	}
	for i := 0; i < f.Number(1, 4); i++ {
		e.Skills = append(e.Skills, f.BuzzWord())
	}
	for _, day := range []string{"Mon", "Tue", "Wed", "Thu", "Fri"} {
		e.Availability = append(e.Availability, hr.AvailabilitySlot{
			Day: day, Start: "09:30", End: "18:00",
		})
	}
	return e
}

// Consultant generates an external specialist record
func (g *Generator) Consultant() hr.Consultant {
	f := g.faker
	c := hr.Consultant{
		ID:             uuid.NewString(),
		TenantID:       g.tenantID,
		Name:           f.Name(),
		Email:          f.Email(),
		Phone:          fmt.Sprintf("9%09d", f.Number(0, 999999999)),
		Specialization: f.RandomString([]string{"GST filing", "Audit", "Payroll", "Company law", "Trademark"}),
		HourlyRate:     decimal.NewFromFloat(f.Price(500, 5000)),
		Status:         hr.EmployeeStatusActive,
	}
	for i := 0; i < f.Number(1, 3); i++ {
		c.Skills = append(c.Skills, f.BuzzWord())
	}
	return c
}

// Document generates a stored-file metadata record
func (g *Generator) Document() content.Document {
	f := g.faker
	d := content.Document{
		ID:         uuid.NewString(),
		TenantID:   g.tenantID,
		Name:       f.AppName() + ".pdf",
		Type:       f.RandomString([]string{"pdf", "docx", "xlsx"}),
		Category:   f.RandomString([]string{"contract", "invoice", "report", "compliance"}),
		FileSize:   int64(f.Number(10_000, 5_000_000)),
		UploadedBy: f.Email(),
		CreatedAt:  g.pastDate(365),
	}
	versions := f.Number(1, 3)
	for v := 1; v <= versions; v++ {
		d.Versions = append(d.Versions, content.DocumentVersion{
			ID:        uuid.NewString(),
			Version:   v,
			FileSize:  d.FileSize,
			CreatedBy: d.UploadedBy,
			CreatedAt: d.CreatedAt,
		})
	}
	return d
}

// Template generates a message template
func (g *Generator) Template() content.Template {
	f := g.faker
	return content.Template{
		ID:        uuid.NewString(),
		TenantID:  g.tenantID,
		Name:      f.BuzzWord() + " template",
		Channel:   f.RandomString([]string{"email", "sms", "whatsapp"}),
		Subject:   f.Sentence(4),
		Body:      f.Paragraph(1, 3, 8, " "),
		Variables: []string{"clientName", "orderNumber", "amount"},
		Active:    true,
		CreatedAt: g.pastDate(365),
	}
}

var deliveryStatuses = []messaging.DeliveryStatus{
	messaging.DeliveryPending, messaging.DeliverySent,
	messaging.DeliveryDelivered, messaging.DeliveryFailed, messaging.DeliveryRead,
}

var channelTypes = []messaging.ChannelType{
	messaging.ChannelEmail, messaging.ChannelSMS,
	messaging.ChannelWhatsApp, messaging.ChannelPush,
}

// Notification generates a dashboard notification
func (g *Generator) Notification() messaging.Notification {
	f := g.faker
	n := messaging.Notification{
		ID:        uuid.NewString(),
		TenantID:  g.tenantID,
		Title:     f.Sentence(3),
		Message:   f.Sentence(8),
		Channel:   channelTypes[f.Number(0, len(channelTypes)-1)],
		Status:    deliveryStatuses[f.Number(0, len(deliveryStatuses)-1)],
		CreatedAt: g.pastDate(30),
	}
	if n.Status == messaging.DeliveryRead {
		at := n.CreatedAt.Add(time.Hour)
		n.ReadAt = &at
	}
	return n
}

// Channel generates a communication channel configuration
func (g *Generator) Channel(i int) messaging.CommunicationChannel {
	kind := channelTypes[i%len(channelTypes)]
	return messaging.CommunicationChannel{
		ID:       uuid.NewString(),
		TenantID: g.tenantID,
		Name:     string(kind) + " channel",
		Type:     kind,
		Enabled:  true,
		Config:   map[string]string{"sender": g.faker.Email()},
	}
}

var severities = []security.Severity{
	security.SeverityInfo, security.SeverityWarning, security.SeverityCritical,
}

// SecurityEvent generates an audit-trail entry
func (g *Generator) SecurityEvent() security.Event {
	f := g.faker
	return security.Event{
		ID:        uuid.NewString(),
		TenantID:  g.tenantID,
		Actor:     f.Email(),
		Action:    f.RandomString([]string{"login", "logout", "export", "settings_change", "password_reset"}),
		Resource:  f.RandomString([]string{"clients", "orders", "settings", "reports"}),
		Severity:  severities[f.Number(0, len(severities)-1)],
		IPAddress: f.IPv4Address(),
		CreatedAt: g.pastDate(30),
	}
}
