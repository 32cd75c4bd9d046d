package reporting

import "github.com/SscSPs/cashflow_app/internal/core/domain"

const (
	DefaultIcon  = "attach_money"
	DefaultColor = "#F0F3FF"

	// OtherCategory is the fallback name for transactions whose category
	// cannot be resolved. It is always split by direction before lookup.
	OtherCategory        = "Other"
	IncomeOtherCategory  = "Income Other"
	OutcomeOtherCategory = "Outcome Other"
)

var defaultStyles = map[string]domain.CategoryStyle{
	"Salary":             {Icon: "attach_money", Color: "#15F5BA"},
	"Interest":           {Icon: "attach_money", Color: "#98A8F8"},
	"Investments":        {Icon: "attach_money", Color: "#6F38C5"},
	"Gifts":              {Icon: "attach_money", Color: "#068FFF"},
	IncomeOtherCategory:  {Icon: "attach_money", Color: "#3A98B9"},
	"Bills":              {Icon: "home", Color: "#CF0A0A"},
	"Groceries":          {Icon: "shopping_cart", Color: "#ADDDD0"},
	"Transportation":     {Icon: "directions_car", Color: "#FFDE00"},
	"Dining":             {Icon: "restaurant", Color: "#F73D93"},
	"Entertainment":      {Icon: "theaters", Color: "#EA906C"},
	"Healthcare":         {Icon: "local_hospital", Color: "#5F264A"},
	"Education":          {Icon: "school", Color: "#FF6000"},
	"Insurance":          {Icon: "security", Color: "#FF597B"},
	"Rent":               {Icon: "home", Color: "#F273E6"},
	OutcomeOtherCategory: {Icon: "attach_money", Color: "#E55604"},
	"Cleaning Household": {Icon: "cleaning_services", Color: "#FEFAF6"},
	"Houseware":          {Icon: "house", Color: "#124076"},
}

// Resolver maps category display names to icon and color.
type Resolver struct {
	styles map[string]domain.CategoryStyle
}

// NewResolver returns a resolver over the built-in table. Entries in
// overrides replace or extend it.
func NewResolver(overrides map[string]domain.CategoryStyle) *Resolver {
	styles := make(map[string]domain.CategoryStyle, len(defaultStyles)+len(overrides))
	for name, style := range defaultStyles {
		styles[name] = style
	}
	for name, style := range overrides {
		styles[name] = style
	}
	return &Resolver{styles: styles}
}

// Resolve never fails: unknown names get the default icon and color.
func (r *Resolver) Resolve(name string) domain.CategoryStyle {
	if style, ok := r.styles[name]; ok {
		return style
	}
	return domain.CategoryStyle{Icon: DefaultIcon, Color: DefaultColor}
}

var builtinResolver = NewResolver(nil)

// ResolveDisplay resolves name against the built-in table.
func ResolveDisplay(name string) domain.CategoryStyle {
	return builtinResolver.Resolve(name)
}

// IsOtherBucket reports whether name is one of the direction specific
// fallback groups. Such a group can mix rows of several categories.
func IsOtherBucket(name string) bool {
	return name == IncomeOtherCategory || name == OutcomeOtherCategory
}

// DisplayName renames the generic "Other" bucket by cash-flow direction so
// that income and outcome leftovers never share a group.
func DisplayName(name string, t domain.CategoryType) string {
	if name != OtherCategory {
		return name
	}
	if t == domain.CategoryTypeIncome {
		return IncomeOtherCategory
	}
	return OutcomeOtherCategory
}
