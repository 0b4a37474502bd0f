// Package core defines the financial item entity, its validation rules and
// the filter semantics shared by every store backend.
package core

import "time"

// ItemType distinguishes money coming in from money going out.
type ItemType string

const (
	TypeIncome  ItemType = "income"
	TypeExpense ItemType = "expense"
)

// IsValid returns true if the item type is one of the known values.
func (t ItemType) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Category classifies an item within its type.
type Category string

const (
	CategorySalary        Category = "salary"
	CategoryFreelance     Category = "freelance"
	CategoryInvestment    Category = "investment"
	CategoryOtherIncome   Category = "other_income"
	CategoryHousing       Category = "housing"
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryHealth        Category = "health"
	CategoryEducation     Category = "education"
	CategoryEntertainment Category = "entertainment"
	CategoryShopping      Category = "shopping"
	CategoryBills         Category = "bills"
	CategoryOtherExpense  Category = "other_expense"
)

// IncomeCategories lists the categories valid for income items.
var IncomeCategories = []Category{
	CategorySalary,
	CategoryFreelance,
	CategoryInvestment,
	CategoryOtherIncome,
}

// ExpenseCategories lists the categories valid for expense items.
var ExpenseCategories = []Category{
	CategoryHousing,
	CategoryFood,
	CategoryTransport,
	CategoryHealth,
	CategoryEducation,
	CategoryEntertainment,
	CategoryShopping,
	CategoryBills,
	CategoryOtherExpense,
}

// CategoryLabels maps categories to their display names.
var CategoryLabels = map[Category]string{
	CategorySalary:        "Salário",
	CategoryFreelance:     "Freelance",
	CategoryInvestment:    "Investimentos",
	CategoryOtherIncome:   "Outras Receitas",
	CategoryHousing:       "Moradia",
	CategoryFood:          "Alimentação",
	CategoryTransport:     "Transporte",
	CategoryHealth:        "Saúde",
	CategoryEducation:     "Educação",
	CategoryEntertainment: "Entretenimento",
	CategoryShopping:      "Compras",
	CategoryBills:         "Contas",
	CategoryOtherExpense:  "Outras Despesas",
}

// IsValid returns true if the category is one of the known values.
// The category set is not cross-checked against the item type; an income
// item carrying an expense category is accepted as-is.
func (c Category) IsValid() bool {
	_, ok := CategoryLabels[c]
	return ok
}

// Label returns the display name for the category, falling back to the raw
// value for unknown categories.
func (c Category) Label() string {
	if label, ok := CategoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Recurrence describes how often an item repeats. It is descriptive
// metadata only; no future items are generated from it.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
)

// IsValid returns true if the recurrence is one of the known values.
func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	default:
		return false
	}
}

// Item is a single income or expense transaction record.
type Item struct {
	ID          string     `json:"id" firestore:"-"`
	Name        string     `json:"name" firestore:"name"`
	Amount      float64    `json:"amount" firestore:"amount"`
	Type        ItemType   `json:"type" firestore:"type"`
	Category    Category   `json:"category" firestore:"category"`
	Date        time.Time  `json:"date" firestore:"date"`
	Description string     `json:"description,omitempty" firestore:"description"`
	Tags        []string   `json:"tags,omitempty" firestore:"tags"`
	Recurrence  Recurrence `json:"recurrence,omitempty" firestore:"recurrence"`
	CreatedAt   time.Time  `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" firestore:"updatedAt"`
}

// Draft is an item payload prior to id and timestamp assignment.
type Draft struct {
	Name        string     `json:"name"`
	Amount      float64    `json:"amount"`
	Type        ItemType   `json:"type"`
	Category    Category   `json:"category"`
	Date        time.Time  `json:"date"`
	Description string     `json:"description,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Recurrence  Recurrence `json:"recurrence,omitempty"`
}

// Patch is a partial update. Nil fields are left untouched. The item type
// is immutable after creation and therefore not part of the patch.
type Patch struct {
	Name        *string     `json:"name,omitempty"`
	Amount      *float64    `json:"amount,omitempty"`
	Category    *Category   `json:"category,omitempty"`
	Date        *time.Time  `json:"date,omitempty"`
	Description *string     `json:"description,omitempty"`
	Tags        *[]string   `json:"tags,omitempty"`
	Recurrence  *Recurrence `json:"recurrence,omitempty"`
}

// IsEmpty returns true if the patch carries no fields.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Amount == nil && p.Category == nil &&
		p.Date == nil && p.Description == nil && p.Tags == nil && p.Recurrence == nil
}

// Apply merges the patch into the item. Timestamps are not touched here;
// the caller is responsible for bumping UpdatedAt.
func (p Patch) Apply(item *Item) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Amount != nil {
		item.Amount = *p.Amount
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Date != nil {
		item.Date = *p.Date
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Tags != nil {
		item.Tags = *p.Tags
	}
	if p.Recurrence != nil {
		item.Recurrence = *p.Recurrence
	}
}
