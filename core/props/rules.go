package props

import "regexp"

var re = regexp.MustCompile

// DefaultRules returns the built-in table in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Category: EventHandler,
			Patterns: []*regexp.Regexp{re(`^on[A-Z]`), re(`^handle[A-Z]`)},
		},
		{
			Category:   Accessibility,
			Exact:      []string{"role", "tabIndex", "alt", "htmlFor", "lang"},
			Patterns:   []*regexp.Regexp{re(`^aria-`), re(`^aria[A-Z]`)},
			Substrings: []string{"accessib"},
		},
		{
			Category: TestSelector,
			Exact:    []string{"data-testid", "data-test-id", "data-test", "data-cy", "data-qa", "testID", "testId"},
			Patterns: []*regexp.Regexp{re(`^data-(test|cy|qa)`)},
		},
		{
			Category:     DataAttribute,
			Patterns:     []*regexp.Regexp{re(`^data-`)},
			SuppressedBy: []Category{TestSelector},
		},
		{
			Category: Reference,
			Exact:    []string{"ref", "innerRef", "inputRef", "forwardedRef", "containerRef"},
			Patterns: []*regexp.Regexp{re(`Ref$`)},
		},
		{
			Category:     Composition,
			Exact:        []string{"children", "as", "component", "components", "render", "asChild", "slots", "slotProps", "componentsProps"},
			Patterns:     []*regexp.Regexp{re(`^render[A-Z]`), re(`Component$`)},
			SuppressedBy: []Category{EventHandler},
		},
		{
			Category:     Identification,
			Exact:        []string{"id", "key", "name"},
			Patterns:     []*regexp.Regexp{re(`[a-z]Id$`)},
			SuppressedBy: []Category{EventHandler, TestSelector},
		},
		{
			Category:     LoadingState,
			Exact:        []string{"loading", "isLoading", "pending", "busy"},
			Substrings:   []string{"loading", "skeleton", "spinner"},
			SuppressedBy: []Category{EventHandler},
		},
		{
			Category: StateControl,
			Exact: []string{
				"value", "defaultValue", "checked", "defaultChecked", "open", "defaultOpen",
				"selected", "disabled", "expanded", "defaultExpanded", "active", "readOnly",
				"required", "hidden", "visible", "show", "activeKey", "selectedKey",
			},
			Patterns:     []*regexp.Regexp{re(`^(is|has|should)[A-Z]`), re(`^default[A-Z]`)},
			SuppressedBy: []Category{EventHandler, LoadingState},
		},
		{
			Category: Configuration,
			Exact: []string{
				"type", "size", "variant", "color", "placement", "orientation", "position",
				"mode", "align", "direction", "fullWidth", "multiple", "autoFocus", "autoComplete",
				"maxLength", "minLength", "min", "max", "step", "dense", "elevation", "shape",
				"layout", "format", "locale", "options", "config",
			},
			Patterns:     []*regexp.Regexp{re(`^(max|min)[A-Z]`)},
			Substrings:   []string{"config", "options", "settings"},
			SuppressedBy: []Category{EventHandler},
		},
		{
			Category: Styling,
			Exact:    []string{"className", "style", "sx", "css", "classes", "class", "theme", "tw", "styles"},
			Patterns: []*regexp.Regexp{re(`^[mp][trblxy]?$`)},
			Substrings: []string{
				"classname", "style", "color", "width", "height", "margin", "padding",
				"background", "border", "radius", "font", "spacing",
			},
			SuppressedBy: []Category{EventHandler},
		},
		{
			Category: Customization,
			Exact: []string{
				"placeholder", "label", "icon", "title", "startIcon", "endIcon", "startAdornment",
				"endAdornment", "prefix", "suffix", "header", "footer", "helperText",
				"description", "tooltip", "emptyText",
			},
			Patterns:     []*regexp.Regexp{re(`^custom[A-Z]`), re(`Icon$`), re(`Label$`), re(`Text$`)},
			Substrings:   []string{"custom", "override"},
			SuppressedBy: []Category{Configuration, Styling},
		},
	}
}
