package rpc

import (
	"strconv"
	"time"

	"github.com/WeirdIdea/OTUS-06/schema"
	"github.com/WeirdIdea/OTUS-06/scoring"
)

// AdminLogin is the login that marks a caller as an administrator.
const AdminLogin = "admin"

var envelopeSchema = schema.Schema{
	{Name: "account", Field: schema.Char(schema.Opts{Nullable: true})},
	{Name: "login", Field: schema.Char(schema.Opts{Required: true, Nullable: true})},
	{Name: "token", Field: schema.Char(schema.Opts{Required: true, Nullable: true})},
	{Name: "arguments", Field: schema.Arguments(schema.Opts{Required: true, Nullable: true})},
	{Name: "method", Field: schema.Char(schema.Opts{Required: true})},
}

// MethodRequest is the validated view over a decoded request envelope.
type MethodRequest struct {
	*schema.Request
}

// NewMethodRequest binds the envelope schema to a decoded JSON body.
func NewMethodRequest(body map[string]any) *MethodRequest {
	return &MethodRequest{schema.Bind(envelopeSchema, body)}
}

func (r *MethodRequest) Account() string { return r.Get("account").Text() }
func (r *MethodRequest) Login() string   { return r.Get("login").Text() }
func (r *MethodRequest) Token() string   { return r.Get("token").Text() }
func (r *MethodRequest) Method() string  { return r.Get("method").Text() }

// Arguments returns the method arguments object, or an empty map when the
// field was supplied as null.
func (r *MethodRequest) Arguments() map[string]any {
	m := r.Get("arguments").Map()
	if m == nil {
		m = map[string]any{}
	}
	return m
}

// IsAdmin reports whether the caller authenticated as the administrator.
func (r *MethodRequest) IsAdmin() bool { return r.Login() == AdminLogin }

var onlineScoreSchema = schema.Schema{
	{Name: "first_name", Field: schema.Char(schema.Opts{Nullable: true})},
	{Name: "last_name", Field: schema.Char(schema.Opts{Nullable: true})},
	{Name: "email", Field: schema.Email(schema.Opts{Nullable: true})},
	{Name: "phone", Field: schema.Phone(schema.Opts{Nullable: true})},
	{Name: "birthday", Field: schema.BirthDay(schema.Opts{Nullable: true})},
	{Name: "gender", Field: schema.Gender(schema.Opts{Nullable: true})},
}

// OnlineScoreRequest is the validated view over online_score arguments.
type OnlineScoreRequest struct {
	*schema.Request
}

func NewOnlineScoreRequest(args map[string]any) *OnlineScoreRequest {
	return &OnlineScoreRequest{schema.Bind(onlineScoreSchema, args)}
}

func (r *OnlineScoreRequest) FirstName() string { return r.Get("first_name").Text() }
func (r *OnlineScoreRequest) LastName() string  { return r.Get("last_name").Text() }
func (r *OnlineScoreRequest) Email() string     { return r.Get("email").Text() }

// Phone normalizes the phone field to its string form; numeric phones are
// rendered as decimal digits.
func (r *OnlineScoreRequest) Phone() string {
	v := r.Get("phone")
	if s := v.Text(); s != "" {
		return s
	}
	if n, ok := v.Int(); ok {
		return strconv.FormatInt(n, 10)
	}
	return ""
}

// Birthday returns the parsed birthday and whether one was supplied.
func (r *OnlineScoreRequest) Birthday() (time.Time, bool) {
	s := r.Get("birthday").Text()
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(schema.DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Gender returns the gender code and whether one was supplied.
func (r *OnlineScoreRequest) Gender() (int64, bool) {
	return r.Get("gender").Int()
}

// EnoughFields reports whether at least one scoring pair is fully present:
// phone and email, first and last name, or birthday and gender.
func (r *OnlineScoreRequest) EnoughFields() bool {
	if r.Phone() != "" && r.Email() != "" {
		return true
	}
	if r.FirstName() != "" && r.LastName() != "" {
		return true
	}
	_, hasBirthday := r.Birthday()
	g, hasGender := r.Gender()
	return hasBirthday && hasGender && schema.KnownGender(g)
}

// Person converts the validated arguments into the scoring input.
func (r *OnlineScoreRequest) Person() scoring.Person {
	p := scoring.Person{
		Phone:     r.Phone(),
		Email:     r.Email(),
		FirstName: r.FirstName(),
		LastName:  r.LastName(),
	}
	p.Birthday, p.HasBirthday = r.Birthday()
	p.Gender, p.HasGender = r.Gender()
	return p
}

var clientsInterestsSchema = schema.Schema{
	{Name: "client_ids", Field: schema.ClientIDs(schema.Opts{Required: true})},
	{Name: "date", Field: schema.Date(schema.Opts{Nullable: true})},
}

// ClientsInterestsRequest is the validated view over clients_interests
// arguments.
type ClientsInterestsRequest struct {
	*schema.Request
}

func NewClientsInterestsRequest(args map[string]any) *ClientsInterestsRequest {
	return &ClientsInterestsRequest{schema.Bind(clientsInterestsSchema, args)}
}

// ClientIDs returns the requested client identifiers. It assumes Validate
// has passed, so every element is an integer.
func (r *ClientsInterestsRequest) ClientIDs() []int64 {
	raw, _ := r.Get("client_ids").Raw.([]any)
	ids := make([]int64, 0, len(raw))
	for _, el := range raw {
		if n, ok := (schema.Value{Set: true, Raw: el}).Int(); ok {
			ids = append(ids, n)
		}
	}
	return ids
}

func (r *ClientsInterestsRequest) Date() string { return r.Get("date").Text() }
