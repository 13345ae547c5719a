package lead

import (
	"encoding/json"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"leadcrm/internal/pkg/rules"
)

// The save/update/status APIs accept both JSON bodies and multipart forms
// (forms whenever documents ride along). Both decode into a rules.Values
// map; the rule sets run against the raw values and the typed payload is
// only assembled after validation passes.

func valuesFromRequest(c *gin.Context) (rules.Values, error) {
	ct := c.ContentType()
	if strings.HasPrefix(ct, "multipart/form-data") {
		return valuesFromForm(c)
	}

	v := rules.Values{}
	for key, vals := range c.Request.URL.Query() {
		if len(vals) > 0 {
			v[strings.TrimSuffix(key, "[]")] = vals[0]
		}
	}
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return v, nil
	}
	if err := c.ShouldBindJSON(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func valuesFromForm(c *gin.Context) (rules.Values, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	v := rules.Values{}
	for key, vals := range form.Value {
		if len(vals) == 0 {
			continue
		}
		name := strings.TrimSuffix(key, "[]")
		if name == "product_services" {
			v[name] = formArray(vals)
			continue
		}
		v[name] = vals[0]
	}

	files := append(form.File["documents"], form.File["documents[]"]...)
	if len(files) > 0 {
		v["documents"] = files
	}
	return v, nil
}

// formArray turns repeated form values into []any; a single JSON-encoded
// array value ("[1,2]") is unpacked for clients that send it that way.
func formArray(vals []string) []any {
	if len(vals) == 1 && strings.HasPrefix(strings.TrimSpace(vals[0]), "[") {
		var arr []any
		if err := json.Unmarshal([]byte(vals[0]), &arr); err == nil {
			return arr
		}
	}
	out := make([]any, len(vals))
	for i, s := range vals {
		out[i] = s
	}
	return out
}

func requestFiles(v rules.Values) []*multipart.FileHeader {
	files, _ := rules.Files(v["documents"])
	return files
}

// savePayload is the typed form of a validated save/update request.
type savePayload struct {
	Name             string
	Email            *string
	Phone            *string
	CountryCodeAlpha string
	CompanyName      *string
	CompanySize      *string
	CompanyWebsite   *string
	LeadStatusID     int64
	LeadChannelID    int64
	LeadConversionID int64
	ProductServices  []int64
	Budget           *string
	TimeLine         *string
	Description      *string
	DealAmount       *float64
	WinCloseReason   *string
	DealCloseDate    *string
}

func payloadFromValues(v rules.Values) savePayload {
	p := savePayload{
		Name:             strField(v, "name"),
		Email:            optStr(v, "email"),
		Phone:            optNumericStr(v, "phone"),
		CountryCodeAlpha: strings.ToUpper(strField(v, "country_code_alpha")),
		CompanyName:      optStr(v, "company_name"),
		CompanySize:      optNumericStr(v, "company_size"),
		CompanyWebsite:   optStr(v, "company_website"),
		Budget:           optStr(v, "budget"),
		TimeLine:         optStr(v, "time_line"),
		Description:      optStr(v, "description"),
		WinCloseReason:   optStr(v, "win_close_reason"),
		DealCloseDate:    optStr(v, "deal_close_date"),
	}
	p.LeadStatusID, _ = rules.Int(v["lead_status_id"])
	p.LeadChannelID, _ = rules.Int(v["lead_channel_id"])
	p.LeadConversionID, _ = rules.Int(v["lead_conversion_id"])
	p.ProductServices = intSlice(v, "product_services")

	if v.Present("deal_amount") {
		if n, ok := rules.Int(v["deal_amount"]); ok {
			amount := float64(n)
			p.DealAmount = &amount
		}
	}
	return p
}

func listQueryFromValues(v rules.Values, dateFormat string) ListQuery {
	q := ListQuery{Search: strField(v, "search")}

	if v.Present("start_date") && v.Present("end_date") {
		start, err1 := time.Parse(dateFormat, strField(v, "start_date"))
		end, err2 := time.Parse(dateFormat, strField(v, "end_date"))
		if err1 == nil && err2 == nil {
			q.StartDate = &start
			q.EndDate = &end
		}
	}

	q.StatusID, _ = rules.Int(v["lead_status_id"])
	q.ChannelID, _ = rules.Int(v["lead_channel_id"])
	q.ConversionID, _ = rules.Int(v["lead_conversion_id"])

	if n, ok := rules.Int(v["order_by"]); ok {
		q.OrderBy = OrderBy(n)
	}
	if n, ok := rules.Int(v["sort_order"]); ok {
		q.SortOrder = SortOrder(n)
	}
	if n, ok := rules.Int(v["page"]); ok {
		q.Page = int(n)
	}
	return q
}

func strField(v rules.Values, field string) string {
	s, _ := rules.Str(v[field])
	return strings.TrimSpace(s)
}

func optStr(v rules.Values, field string) *string {
	if !v.Present(field) {
		return nil
	}
	s := strField(v, field)
	if s == "" {
		return nil
	}
	return &s
}

// optNumericStr keeps numeric-looking values (phone, company size) as the
// string the column stores, whether they arrived as JSON numbers or strings.
func optNumericStr(v rules.Values, field string) *string {
	if !v.Present(field) {
		return nil
	}
	if s, ok := rules.Str(v[field]); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		return &s
	}
	if n, ok := rules.Int(v[field]); ok {
		s := strconv.FormatInt(n, 10)
		return &s
	}
	return nil
}

func intSlice(v rules.Values, field string) []int64 {
	raw, _ := v[field].([]any)
	out := make([]int64, 0, len(raw))
	for _, elem := range raw {
		if n, ok := rules.Int(elem); ok {
			out = append(out, n)
		}
	}
	return out
}

