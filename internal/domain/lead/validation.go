package lead

import (
	"context"
	"strings"

	"leadcrm/internal/domain/catalog"
	"leadcrm/internal/domain/document"
	"leadcrm/internal/pkg/i18n"
	"leadcrm/internal/pkg/rules"
)

// Per-operation request contracts. Rule order matters: the first failing
// rule per field produces the message, and the first failing field in
// declaration order becomes the response.

func (s *Service) catalogExists(kind catalog.Kind) rules.ExistsFunc {
	return func(ctx context.Context, value any) (bool, error) {
		id, ok := rules.Int(value)
		if !ok {
			return false, nil
		}
		return s.catalogs.Exists(ctx, kind, id)
	}
}

func (s *Service) countryExists(ctx context.Context, value any) (bool, error) {
	alpha, ok := rules.Str(value)
	if !ok {
		return false, nil
	}
	country, err := s.catalogs.CountryByAlpha(ctx, strings.ToUpper(strings.TrimSpace(alpha)))
	if err != nil {
		return false, err
	}
	return country != nil, nil
}

func (s *Service) leadExists(ctx context.Context, value any) (bool, error) {
	id, ok := rules.Int(value)
	if !ok {
		return false, nil
	}
	return s.leads.ExistsLive(ctx, id)
}

func (s *Service) leadIDRules() rules.FieldRules {
	return rules.FieldRules{Field: "lead_id", Rules: []rules.Rule{
		rules.Required(), rules.Integer(), rules.Exists(s.leadExists),
	}}
}

// saveFields is shared by create and update; update prepends the lead_id
// contract.
func (s *Service) saveFields(update bool) []rules.FieldRules {
	var fields []rules.FieldRules
	if update {
		fields = append(fields, s.leadIDRules())
	}
	return append(fields,
		rules.FieldRules{Field: "name", Rules: []rules.Rule{
			rules.Required(), rules.String(),
		}},
		rules.FieldRules{Field: "email", Rules: []rules.Rule{
			rules.RequiredWithout("phone"), rules.String(), rules.Email(true),
		}},
		rules.FieldRules{Field: "phone", Rules: []rules.Rule{
			rules.RequiredWithout("email"), rules.Numeric(), rules.Phone("country_code_alpha"),
		}},
		rules.FieldRules{Field: "country_code_alpha", Rules: []rules.Rule{
			rules.RequiredWith("phone"), rules.String(), rules.Exists(s.countryExists),
		}},
		rules.FieldRules{Field: "company_name", Rules: []rules.Rule{rules.String()}},
		rules.FieldRules{Field: "company_size", Rules: []rules.Rule{rules.Integer()}},
		rules.FieldRules{Field: "company_website", Rules: []rules.Rule{rules.String()}},
		rules.FieldRules{Field: "lead_status_id", Rules: []rules.Rule{
			rules.Required(), rules.Integer(), rules.Exists(s.catalogExists(catalog.KindStatus)),
		}},
		rules.FieldRules{Field: "lead_channel_id", Rules: []rules.Rule{
			rules.Required(), rules.Integer(), rules.Exists(s.catalogExists(catalog.KindChannel)),
		}},
		rules.FieldRules{Field: "lead_conversion_id", Rules: []rules.Rule{
			rules.Required(), rules.Integer(), rules.Exists(s.catalogExists(catalog.KindConversion)),
		}},
		rules.FieldRules{Field: "product_services", Rules: []rules.Rule{
			rules.Required(), rules.Array(),
			rules.Each(rules.Integer()),
			rules.Each(rules.Exists(s.catalogExists(catalog.KindProductService))),
		}},
		rules.FieldRules{Field: "budget", Rules: []rules.Rule{rules.String()}},
		rules.FieldRules{Field: "time_line", Rules: []rules.Rule{rules.String()}},
		rules.FieldRules{Field: "description", Rules: []rules.Rule{rules.String()}},
		rules.FieldRules{Field: "deal_amount", Rules: []rules.Rule{rules.Integer()}},
		rules.FieldRules{Field: "win_close_reason", Rules: []rules.Rule{rules.String()}},
		rules.FieldRules{Field: "deal_close_date", Rules: []rules.Rule{rules.Date(s.dateFormat)}},
		rules.FieldRules{Field: "documents", Rules: []rules.Rule{
			rules.File(),
			rules.MaxFileSize(s.maxFileBytes),
			rules.FileMIME(document.AllowedMimeTypes),
		}},
	)
}

func (s *Service) listFields() []rules.FieldRules {
	return []rules.FieldRules{
		{Field: "search", Rules: []rules.Rule{rules.String()}},
		{Field: "start_date", Rules: []rules.Rule{rules.String(), rules.Date(s.dateFormat)}},
		{Field: "end_date", Rules: []rules.Rule{
			rules.String(), rules.Date(s.dateFormat), rules.After("start_date", s.dateFormat),
		}},
		{Field: "order_by", Rules: []rules.Rule{rules.Integer(), rules.In(1, 2, 3, 4)}},
		{Field: "sort_order", Rules: []rules.Rule{rules.Integer(), rules.In(1, 2)}},
		{Field: "page", Rules: []rules.Rule{rules.Integer()}},
		{Field: "lead_status_id", Rules: []rules.Rule{
			rules.Integer(), rules.Exists(s.catalogExists(catalog.KindStatus)),
		}},
		{Field: "lead_channel_id", Rules: []rules.Rule{
			rules.Integer(), rules.Exists(s.catalogExists(catalog.KindChannel)),
		}},
		{Field: "lead_conversion_id", Rules: []rules.Rule{
			rules.Integer(), rules.Exists(s.catalogExists(catalog.KindConversion)),
		}},
	}
}

func (s *Service) statusFields() []rules.FieldRules {
	return []rules.FieldRules{
		s.leadIDRules(),
		{Field: "type", Rules: []rules.Rule{
			rules.Required(), rules.Integer(),
			rules.In(int64(KindStatus), int64(KindChannel), int64(KindConversion)),
		}},
		{Field: "lead_status_id", Rules: []rules.Rule{
			rules.RequiredIf("type", int64(KindStatus)),
			rules.Integer(), rules.Exists(s.catalogExists(catalog.KindStatus)),
		}},
		{Field: "lead_channel_id", Rules: []rules.Rule{
			rules.RequiredIf("type", int64(KindChannel)),
			rules.Integer(), rules.Exists(s.catalogExists(catalog.KindChannel)),
		}},
		{Field: "lead_conversion_id", Rules: []rules.Rule{
			rules.RequiredIf("type", int64(KindConversion)),
			rules.Integer(), rules.Exists(s.catalogExists(catalog.KindConversion)),
		}},
	}
}

func (s *Service) leadIDFields() []rules.FieldRules {
	return []rules.FieldRules{s.leadIDRules()}
}

// ---- message catalogs ----

func leadIDMessages() map[string]string {
	return map[string]string{
		"lead_id.required": i18n.T("lead_id_required_error_msg"),
		"lead_id.integer":  i18n.T("lead_id_integer_error_msg"),
		"lead_id.exists":   i18n.T("lead_id_exists_error_msg"),
	}
}

func saveMessages() map[string]string {
	m := leadIDMessages()
	for key, label := range map[string]string{
		"name.required":                      "lead_name_required_error_msg",
		"name.string":                        "lead_name_string_error_msg",
		"email.required_without":             "email_required_error_msg",
		"email.string":                       "email_string_error_msg",
		"email.email":                        "email_format_error_msg",
		"phone.required_without":             "lead_phone_required_without_error_msg",
		"phone.numeric":                      "lead_phone_numeric_error_msg",
		"phone.phone":                        "lead_phone_phone_error_msg",
		"country_code_alpha.required_with":   "lead_country_code_alpha_required_with_error_msg",
		"country_code_alpha.string":          "lead_country_code_alpha_string_error_msg",
		"country_code_alpha.exists":          "lead_country_code_alpha_exists_error_msg",
		"company_name.string":                "company_name_string_error_msg",
		"company_size.integer":               "company_size_integer_error_msg",
		"company_website.string":             "company_website_string_error_msg",
		"lead_status_id.required":            "lead_status_id_required_error_msg",
		"lead_status_id.integer":             "lead_status_id_integer_error_msg",
		"lead_status_id.exists":              "lead_status_id_exists_error_msg",
		"lead_channel_id.required":           "lead_channel_id_required_error_msg",
		"lead_channel_id.integer":            "lead_channel_id_integer_error_msg",
		"lead_channel_id.exists":             "lead_channel_id_exists_error_msg",
		"lead_conversion_id.required":        "lead_conversion_id_required_error_msg",
		"lead_conversion_id.integer":         "lead_conversion_id_integer_error_msg",
		"lead_conversion_id.exists":          "lead_conversion_id_exists_error_msg",
		"product_services.required":          "product_services_required_error_msg",
		"product_services.array":             "product_services_array_error_msg",
		"product_services.*.integer":         "product_services_exists_error_msg",
		"product_services.*.exists":          "product_services_exists_error_msg",
		"budget.string":                      "budget_string_error_msg",
		"time_line.string":                   "time_line_string_error_msg",
		"description.string":                 "lead_description_string_error_msg",
		"deal_amount.integer":                "lead_deal_amount_integer_error_msg",
		"win_close_reason.string":            "win_close_reason_string_error_msg",
		"deal_close_date.date_format":        "deal_close_date_string_error_msg",
		"documents.file":                     "documents_file_error_msg",
		"documents.max":                      "documents_max_error_msg",
		"documents.mimes":                    "documents_mimes_error_msg",
	} {
		m[key] = i18n.T(label)
	}
	return m
}

func listMessages() map[string]string {
	m := make(map[string]string)
	for key, label := range map[string]string{
		"search.string":              "search_string_error_msg",
		"start_date.string":          "start_date_string_error_msg",
		"start_date.date_format":     "start_date_format_string_error_msg",
		"end_date.string":            "end_date_string_error_msg",
		"end_date.date_format":       "end_date_format_string_error_msg",
		"end_date.after":             "end_date_after_string_error_msg",
		"order_by.integer":           "order_by_integer_error_msg",
		"order_by.in":                "order_by_in_error_msg",
		"sort_order.integer":         "sort_order_integer_error_msg",
		"sort_order.in":              "sort_order_in_error_msg",
		"page.integer":               "page_integer_error_msg",
		"lead_status_id.integer":     "lead_status_id_integer_error_msg",
		"lead_status_id.exists":      "lead_status_id_exists_error_msg",
		"lead_channel_id.integer":    "lead_channel_id_integer_error_msg",
		"lead_channel_id.exists":     "lead_channel_id_exists_error_msg",
		"lead_conversion_id.integer": "lead_conversion_id_integer_error_msg",
		"lead_conversion_id.exists":  "lead_conversion_id_exists_error_msg",
	} {
		m[key] = i18n.T(label)
	}
	return m
}

func statusMessages() map[string]string {
	m := leadIDMessages()
	for key, label := range map[string]string{
		"type.required":                  "type_required_error_msg",
		"type.integer":                   "type_integer_error_msg",
		"type.in":                        "type_in_error_msg",
		"lead_status_id.required_if":     "lead_status_id_required_error_msg",
		"lead_status_id.integer":         "lead_status_id_integer_error_msg",
		"lead_status_id.exists":          "lead_status_id_exists_error_msg",
		"lead_channel_id.required_if":    "lead_channel_id_required_error_msg",
		"lead_channel_id.integer":        "lead_channel_id_integer_error_msg",
		"lead_channel_id.exists":         "lead_channel_id_exists_error_msg",
		"lead_conversion_id.required_if": "lead_conversion_id_required_error_msg",
		"lead_conversion_id.integer":     "lead_conversion_id_integer_error_msg",
		"lead_conversion_id.exists":      "lead_conversion_id_exists_error_msg",
	} {
		m[key] = i18n.T(label)
	}
	return m
}
