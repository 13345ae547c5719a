package i18n

// Message catalog for API responses. Keys mirror the label table the mobile
// clients were built against; T falls back to the key itself so a missing
// label never turns into an empty response.

var labels = map[string]string{
	"something_went_wrong_error_msg":     "Oops! Something went wrong. Please try again.",
	"invalid_login_credential_error_msg": "Those login details don’t look right. Please check and try again.",

	"search_string_error_msg":              "Invalid search, please try again.",
	"start_date_string_error_msg":          "Invalid start date, please try again.",
	"start_date_date_error_msg":            "Invalid start date, please try again.",
	"start_date_format_string_error_msg":   "Invalid start date format, please try again.",
	"end_date_string_error_msg":            "Invalid end date, please try again.",
	"end_date_date_error_msg":              "Invalid end date, please try again.",
	"end_date_format_string_error_msg":     "Invalid end date format, please try again.",
	"end_date_after_string_error_msg":      "Invalid end date, please try again.",
	"order_by_integer_error_msg":           "Invalid order by, please try again.",
	"order_by_in_error_msg":                "Invalid order by, please try again.",
	"sort_order_integer_error_msg":         "Invalid sort order, please try again.",
	"sort_order_in_error_msg":              "Invalid sort order, please try again.",
	"page_integer_error_msg":               "Invalid page, please try again.",
	"lead_status_id_required_error_msg":    "Invalid lead status, please try again.",
	"lead_status_id_integer_error_msg":     "Invalid lead status, please try again.",
	"lead_status_id_exists_error_msg":      "Invalid lead status, please try again.",
	"lead_channel_id_required_error_msg":   "Invalid lead channel, please try again.",
	"lead_channel_id_integer_error_msg":    "Invalid lead channel, please try again.",
	"lead_channel_id_exists_error_msg":     "Invalid lead channel, please try again.",
	"lead_conversion_id_required_error_msg": "Invalid lead conversation, please try again.",
	"lead_conversion_id_integer_error_msg": "Invalid lead conversion, please try again.",
	"lead_conversion_id_exists_error_msg":  "Invalid lead conversion, please try again.",

	"lead_id_required_error_msg":                      "Invalid Lead Id, please try again.",
	"lead_id_integer_error_msg":                       "Invalid Lead Id, please try again.",
	"lead_id_exists_error_msg":                        "Invalid Lead Id, please try again.",
	"lead_name_required_error_msg":                    "Invalid name, please try again.",
	"lead_name_string_error_msg":                      "Invalid name, please try again.",
	"email_required_error_msg":                        "Invalid email, please try again.",
	"email_string_error_msg":                          "Invalid email, please try again.",
	"email_format_error_msg":                          "Invalid email, please try again.",
	"lead_phone_required_without_error_msg":           "Invalid phone, please try again.",
	"lead_phone_numeric_error_msg":                    "Invalid phone, please try again.",
	"lead_phone_phone_error_msg":                      "Invalid phone, please try again.",
	"lead_country_code_alpha_required_with_error_msg": "Invalid Country Code Alpha, please try again.",
	"lead_country_code_alpha_string_error_msg":        "Invalid Country Code Alpha, please try again.",
	"lead_country_code_alpha_exists_error_msg":        "Invalid Country Code Alpha, please try again.",
	"company_name_string_error_msg":                   "Invalid company, please try again.",
	"company_size_integer_error_msg":                  "Invalid company size, please try again.",
	"company_website_string_error_msg":                "Invalid company website, please try again.",
	"product_services_required_error_msg":             "Invalid product/services, please try again.",
	"product_services_array_error_msg":                "Invalid product/services, please try again.",
	"product_services_exists_error_msg":               "Invalid product/services, please try again.",
	"budget_string_error_msg":                         "Invalid Budget, please try again.",
	"time_line_string_error_msg":                      "Invalid Timeline, please try again.",
	"lead_description_string_error_msg":               "Invalid Description, please try again.",
	"lead_deal_amount_integer_error_msg":              "Invalid Deal Amount, please try again.",
	"win_close_reason_string_error_msg":               "Invalid win/close reason, please try again.",
	"deal_close_date_string_error_msg":                "Invalid deal close date, please try again.",
	"documents_array_error_msg":                       "Invalid documents, please try again.",
	"documents_file_error_msg":                        "Invalid documents, please try again.",
	"documents_max_error_msg":                         "The file may not be greater than 5120 kilobytes.",
	"documents_mimes_error_msg":                       "The file must be a file of a supported type.",

	"type_required_error_msg": "Invalid type, please try again.",
	"type_integer_error_msg":  "Invalid type, please try again.",
	"type_in_error_msg":       "Invalid type, please try again.",

	"lead_insert_success_msg":        "Lead saved successfully.",
	"lead_update_success_msg":        "Lead updated successfully.",
	"lead_delete_success_msg":        "Lead deleted successfully.",
	"lead_status_update_success_msg": "Lead status updated successfully.",
}

func T(key string) string {
	if msg, ok := labels[key]; ok {
		return msg
	}
	return key
}
