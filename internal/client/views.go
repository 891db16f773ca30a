package client

import (
	"encoding/csv"
	"errors"
	"io"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/01moynul/agencyhub/internal/models"
	"github.com/go-playground/validator/v10"
)

// Plan sort orders accepted by SortPlans.
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNewest    = "newest"
)

// AllCategories matches every category in the filters below.
const AllCategories = "All"

func matchesCategory(have, want string) bool {
	return want == "" || strings.EqualFold(want, AllCategories) || strings.EqualFold(have, want)
}

func containsFold(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

// FilterPlans keeps plans in category whose category, description or any
// feature contains search, ignoring case.
func FilterPlans(plans []models.PricePlan, search, category string) []models.PricePlan {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]models.PricePlan, 0, len(plans))
	for _, p := range plans {
		if !matchesCategory(p.Category, category) {
			continue
		}
		fields := append([]string{p.Category, p.Description}, p.Features...)
		if containsFold(search, fields...) {
			out = append(out, p)
		}
	}
	return out
}

// SortPlans returns a sorted copy. Unknown orders keep the API order.
func SortPlans(plans []models.PricePlan, order string) []models.PricePlan {
	out := slices.Clone(plans)
	switch order {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out
}

// FilterProjects keeps projects in category whose title, description or
// category contains search, ignoring case.
func FilterProjects(projects []models.Project, search, category string) []models.Project {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if matchesCategory(p.Category, category) && containsFold(search, p.Title, p.Description, p.Category) {
			out = append(out, p)
		}
	}
	return out
}

// Categories lists the distinct categories of items in first-seen order,
// comparing case-insensitively.
func Categories[T any](items []T, category func(T) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range items {
		c := strings.TrimSpace(category(item))
		key := strings.ToLower(c)
		if c == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

// PlanCategory and ProjectCategory are accessors for Categories.
func PlanCategory(p models.PricePlan) string  { return p.Category }
func ProjectCategory(p models.Project) string { return p.Category }

// FilterQueries keeps inquiries whose email, message or plan category
// contains search, ignoring case.
func FilterQueries(queries []models.QueryWithPlan, search string) []models.QueryWithPlan {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]models.QueryWithPlan, 0, len(queries))
	for _, q := range queries {
		plan := ""
		if q.PriceCard != nil {
			plan = q.PriceCard.Category
		}
		if containsFold(search, q.Email, q.Message, plan) {
			out = append(out, q)
		}
	}
	return out
}

// WriteQueriesCSV exports inquiries with their plan. Inquiries whose plan
// was deleted get empty plan columns.
func WriteQueriesCSV(w io.Writer, queries []models.QueryWithPlan) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Email", "Plan", "Price", "Message", "Submitted"}); err != nil {
		return err
	}
	for _, q := range queries {
		plan, price := "", ""
		if q.PriceCard != nil {
			plan = q.PriceCard.Category
			price = strconv.FormatFloat(q.PriceCard.Price, 'f', -1, 64)
		}
		submitted := ""
		if !q.CreatedAt.IsZero() {
			submitted = q.CreatedAt.UTC().Format(time.RFC3339)
		}
		if err := cw.Write([]string{q.Email, plan, price, q.Message, submitted}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Contact form problems reported by ValidateContact.
var (
	ErrInvalidEmail    = errors.New("please enter a valid email address")
	ErrPlanRequired    = errors.New("please choose a plan")
	ErrMessageRequired = errors.New("please write a message")
)

var validate = validator.New()

// ValidateContact checks the form before it is sent. All problems are
// returned joined, in field order.
func ValidateContact(c Contact) error {
	c.Email = strings.TrimSpace(c.Email)
	c.PriceCardID = strings.TrimSpace(c.PriceCardID)
	c.Message = strings.TrimSpace(c.Message)

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var errs []error
	for _, fe := range verrs {
		switch fe.Field() {
		case "Email":
			errs = append(errs, ErrInvalidEmail)
		case "PriceCardID":
			errs = append(errs, ErrPlanRequired)
		case "Message":
			errs = append(errs, ErrMessageRequired)
		}
	}
	return errors.Join(errs...)
}
