package seed

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"dashboard-backend/internal/models"
)

// PlaceholderUser carries a plain-text password; it is hashed on insert.
type PlaceholderUser struct {
	ID       uuid.UUID
	Name     string
	Email    string
	Password string
}

// Dataset is the fixed set of rows a seed run inserts.
type Dataset struct {
	Users     []PlaceholderUser
	Customers []models.Customer
	Invoices  []models.Invoice
	Revenue   []models.Revenue
}

// invoiceNamespace derives stable invoice ids so that re-running the seed
// hits the same primary keys.
var invoiceNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("dashboard-backend/placeholder/invoices"))

// InvoiceID returns the deterministic id of the n-th (1-based) placeholder
// invoice.
func InvoiceID(n int) uuid.UUID {
	return uuid.NewSHA1(invoiceNamespace, []byte(fmt.Sprintf("invoice-%d", n)))
}

// Date parses a YYYY-MM-DD literal. It panics on malformed input and is
// meant for fixed data only.
func Date(s string) datatypes.Date {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return datatypes.Date(t)
}

// Placeholder returns the dashboard's demo data.
func Placeholder() Dataset {
	customers := []models.Customer{
		{ID: uuid.MustParse("d6e15727-9fe1-4961-8c5b-ea44a9bd81aa"), Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"},
		{ID: uuid.MustParse("3958dc9e-712f-4377-85e9-fec4b6a6442a"), Name: "Delba de Oliveira", Email: "delba@oliveira.com", ImageURL: "/customers/delba-de-oliveira.png"},
		{ID: uuid.MustParse("3958dc9e-742f-4377-85e9-fec4b6a6442a"), Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/customers/lee-robinson.png"},
		{ID: uuid.MustParse("76d65c26-f784-44a2-ac19-586678f7c2f2"), Name: "Michael Novotny", Email: "michael@novotny.com", ImageURL: "/customers/michael-novotny.png"},
		{ID: uuid.MustParse("CC27C14A-0ACF-4F4A-A6C9-D45682C144B9"), Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/customers/amy-burns.png"},
		{ID: uuid.MustParse("13D07535-C59E-4157-A011-F8D2EF4E0CBB"), Name: "Balazs Orban", Email: "balazs@orban.com", ImageURL: "/customers/balazs-orban.png"},
	}

	type inv struct {
		customer int
		amount   int64
		status   models.InvoiceStatus
		date     string
	}
	raw := []inv{
		{0, 15795, models.InvoicePending, "2022-12-06"},
		{1, 20348, models.InvoicePending, "2022-11-14"},
		{4, 3040, models.InvoicePaid, "2022-10-29"},
		{3, 44800, models.InvoicePaid, "2023-09-10"},
		{5, 34577, models.InvoicePending, "2023-08-05"},
		{2, 54246, models.InvoicePending, "2023-07-16"},
		{0, 666, models.InvoicePending, "2023-06-27"},
		{3, 32545, models.InvoicePaid, "2023-06-09"},
		{4, 1250, models.InvoicePaid, "2023-06-17"},
		{5, 8546, models.InvoicePaid, "2023-06-07"},
		{1, 500, models.InvoicePaid, "2023-08-19"},
		{5, 8945, models.InvoicePaid, "2023-06-03"},
		{2, 1000, models.InvoicePaid, "2022-06-05"},
	}
	invoices := make([]models.Invoice, len(raw))
	for i, r := range raw {
		invoices[i] = models.Invoice{
			ID:         InvoiceID(i + 1),
			CustomerID: customers[r.customer].ID,
			Amount:     r.amount,
			Status:     r.status,
			Date:       Date(r.date),
		}
	}

	return Dataset{
		Users: []PlaceholderUser{
			{ID: uuid.MustParse("410544b2-4001-4271-9855-fec4b6a6442a"), Name: "User", Email: "user@nextmail.com", Password: "123456"},
		},
		Customers: customers,
		Invoices:  invoices,
		Revenue: []models.Revenue{
			{Month: "Jan", Revenue: 2000},
			{Month: "Feb", Revenue: 1800},
			{Month: "Mar", Revenue: 2200},
			{Month: "Apr", Revenue: 2500},
			{Month: "May", Revenue: 2300},
			{Month: "Jun", Revenue: 3200},
			{Month: "Jul", Revenue: 3500},
			{Month: "Aug", Revenue: 3700},
			{Month: "Sep", Revenue: 2500},
			{Month: "Oct", Revenue: 2800},
			{Month: "Nov", Revenue: 3000},
			{Month: "Dec", Revenue: 4800},
		},
	}
}
