package blackbaud

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"destination-sync/core/fault"
	"destination-sync/core/metrics"
	"destination-sync/core/reconcile"
	"destination-sync/core/transport"
	"destination-sync/core/transport/mocks"
	"destination-sync/core/utils"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	skyURL  = "https://sky.test/constituent/v1"
	giftURL = "https://sky.test/gift/v1"

	searchByEmail  = skyURL + "/constituents/search?search_field=email_address&search_text=john%40example.biz"
	searchByLookup = skyURL + "/constituents/search?search_field=lookup_id&search_text=abcd1234"
	constituents   = skyURL + "/constituents"
	constituent123 = skyURL + "/constituents/123"
	addresses123   = skyURL + "/constituents/123/addresses?include_inactive=true"
	emails123      = skyURL + "/constituents/123/emailaddresses?include_inactive=true"
	presences123   = skyURL + "/constituents/123/onlinepresences?include_inactive=true"
	phones123      = skyURL + "/constituents/123/phones?include_inactive=true"

	foundOne = `{"count":1,"value":[{"id":"123","name":"John Doe"}]}`
	foundNone = `{"count":0,"value":[]}`
)

type fixture struct {
	reconciler *Reconciler
	client     *Client
	transport  *mocks.Transport
	metrics    *metrics.Metrics
}

func newFixture() *fixture {
	tr := new(mocks.Transport)
	m := metrics.New()
	client := NewClient(tr, Config{BaseURL: skyURL, GiftBaseURL: giftURL, AccessToken: "token", SubscriptionKey: "key"}, m)
	return &fixture{
		reconciler: NewReconciler(client, m, zap.NewNop()),
		client:     client,
		transport:  tr,
		metrics:    m,
	}
}

func (f *fixture) on(method, url string, status int, body string) *mock.Call {
	return f.transport.On("Send", mock.Anything, mocks.Request(method, url)).Return(mocks.Reply(status, body), nil)
}

// requests returns the recorded requests for method and url.
func (f *fixture) requests(method, url string) []transport.Request {
	var out []transport.Request
	for _, call := range f.transport.Calls {
		req := call.Arguments.Get(1).(transport.Request)
		if req.Method == method && req.URL == url {
			out = append(out, req)
		}
	}
	return out
}

func johnDoe() ConstituentPayload {
	return ConstituentPayload{
		First: "John",
		Last:  "Doe",
		Email: &Email{Address: "john@example.biz", Type: "Home"},
	}
}

// TestReconcileRecord_CreateWithoutIdentity tests that a payload without identity skips the search.
func TestReconcileRecord_CreateWithoutIdentity(t *testing.T) {
	f := newFixture()
	f.on("POST", constituents, 200, `{"id":"456"}`).Once()

	res, err := f.reconciler.ReconcileRecord(context.Background(), ConstituentPayload{First: "Jane", Last: "Doe"}, Settings{})
	require.NoError(t, err)
	assert.Equal(t, &RecordResult{ID: "456", Created: true}, res)
	f.transport.AssertNumberOfCalls(t, "Send", 1)

	body := f.requests("POST", constituents)[0].Body.(createConstituentBody)
	assert.Equal(t, "Individual", body.Type)
	assert.Equal(t, "Doe", body.Last)
	assert.Nil(t, body.Address)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Reconciliations.WithLabelValues("record", "success")))
}

func TestReconcileRecord_CreateEmbedsSubRecords(t *testing.T) {
	f := newFixture()
	f.on("GET", searchByEmail, 200, foundNone).Once()
	f.on("POST", constituents, 200, `{"id":"123"}`).Once()

	p := johnDoe()
	p.Birthdate = "1990-04-12"
	p.Phone = &Phone{Number: "+1 (877) 446-6722"}

	res, err := f.reconciler.ReconcileRecord(context.Background(), p, Settings{})
	require.NoError(t, err)
	assert.True(t, res.Created)

	body := f.requests("POST", constituents)[0].Body.(createConstituentBody)
	assert.Equal(t, "john@example.biz", body.Email["address"])
	assert.Equal(t, "+1 (877) 446-6722", body.Phone["number"])
	assert.Nil(t, body.OnlinePresence)
	assert.Equal(t, &fuzzyDate{D: 12, M: 4, Y: 1990}, body.Birthdate)
}

// TestReconcileRecord_MultipleMatches tests that an ambiguous search fails before any write.
func TestReconcileRecord_MultipleMatches(t *testing.T) {
	f := newFixture()
	f.on("GET", searchByEmail, 200, `{"count":2,"value":[{"id":"123"},{"id":"456"}]}`).Once()

	_, err := f.reconciler.ReconcileRecord(context.Background(), johnDoe(), Settings{})
	flt := fault.As(err)
	require.NotNil(t, flt)
	assert.Equal(t, fault.KindFatal, flt.Kind)
	assert.Equal(t, CodeMultipleRecords, flt.Code)
	assert.Equal(t, "Multiple records returned for given traits", flt.Message)
	assert.Equal(t, http.StatusBadRequest, flt.Status)
	f.transport.AssertNumberOfCalls(t, "Send", 1)
}

func TestReconcileRecord_UnexpectedCount(t *testing.T) {
	f := newFixture()
	f.on("GET", searchByEmail, 200, `{"count":-1,"value":[]}`).Once()

	_, err := f.reconciler.ReconcileRecord(context.Background(), johnDoe(), Settings{})
	flt := fault.As(err)
	require.NotNil(t, flt)
	assert.Equal(t, CodeUnexpectedCount, flt.Code)
}

func TestReconcileRecord_SearchRateLimited(t *testing.T) {
	f := newFixture()
	f.on("GET", searchByEmail, 429, "").Once()

	_, err := f.reconciler.ReconcileRecord(context.Background(), johnDoe(), Settings{})
	flt := fault.As(err)
	require.NotNil(t, flt)
	assert.Equal(t, fault.KindRetryable, flt.Kind)
	assert.Equal(t, "429 error returned when searching for constituent", flt.Message)
}

func TestReconcileRecord_SearchByLookupID(t *testing.T) {
	f := newFixture()
	f.on("GET", searchByLookup, 200, foundOne).Once()
	f.on("PATCH", constituent123, 200, "").Once()

	p := johnDoe()
	p.LookupID = "abcd1234"
	p.Email = nil

	res, err := f.reconciler.ReconcileRecord(context.Background(), p, Settings{})
	require.NoError(t, err)
	assert.Equal(t, "123", res.ID)
	assert.False(t, res.Created)

	body := f.requests("PATCH", constituent123)[0].Body.(constituentFields)
	assert.Equal(t, "abcd1234", body.LookupID)
	assert.Equal(t, "John", body.First)
}

// TestReconcileRecord_LookupIDOnlyIsIdempotent tests that a lookup id alone does not patch the constituent.
func TestReconcileRecord_LookupIDOnlyIsIdempotent(t *testing.T) {
	f := newFixture()
	f.on("GET", searchByLookup, 200, foundOne).Once()
	f.on("GET", emails123, 200, `{"count":1,"value":[{"id":"2000","address":"John@Example.biz","type":"Home"}]}`).Once()

	p := ConstituentPayload{
		LookupID: "abcd1234",
		Email:    &Email{Address: "john@example.biz", Type: "Home"},
	}

	res, err := f.reconciler.ReconcileRecord(context.Background(), p, Settings{})
	require.NoError(t, err)
	assert.Equal(t, &RecordResult{ID: "123"}, res)
	assert.Empty(t, f.requests("PATCH", constituent123))
	f.transport.AssertNumberOfCalls(t, "Send", 2)
}

func TestReconcileRecord_MissingLastName(t *testing.T) {
	f := newFixture()
	f.on("GET", searchByEmail, 200, foundNone).Once()

	p := johnDoe()
	p.Last = ""

	_, err := f.reconciler.ReconcileRecord(context.Background(), p, Settings{})
	flt := fault.As(err)
	require.NotNil(t, flt)
	assert.Equal(t, fault.KindValidation, flt.Kind)
	assert.Equal(t, fault.CodeMissingField, flt.Code)
	assert.Equal(t, "Missing last name value", flt.Message)
	f.transport.AssertNumberOfCalls(t, "Send", 1)
}

func TestReconcileRecord_CreateRateLimited(t *testing.T) {
	f := newFixture()
	f.on("GET", searchByEmail, 200, foundNone).Once()
	f.on("POST", constituents, 429, "").Once()

	_, err := f.reconciler.ReconcileRecord(context.Background(), johnDoe(), Settings{})
	flt := fault.As(err)
	require.NotNil(t, flt)
	assert.Equal(t, fault.KindRetryable, flt.Kind)
	assert.Equal(t, "429 error occurred when creating constituent", flt.Message)
}

// TestReconcileRecord_UpdateExisting tests create, patch and no-op decisions across sub-record types.
func TestReconcileRecord_UpdateExisting(t *testing.T) {
	f := newFixture()
	f.on("GET", searchByEmail, 200, foundOne).Once()
	f.on("PATCH", constituent123, 200, "").Once()
	f.on("GET", addresses123, 200, `{"count":1,"value":[{"id":"1000","address_lines":"PO Box 963","city":"New York City","postal_code":"10108","state":"NY","preferred":true,"inactive":false,"type":"Home"}]}`).Once()
	f.on("POST", skyURL+"/addresses", 200, `{"id":"1001"}`).Once()
	f.on("GET", emails123, 200, `{"count":1,"value":[{"id":"2000","address":"John@Example.BIZ","type":"Home","primary":true,"inactive":false,"do_not_email":false}]}`).Once()
	f.on("GET", presences123, 200, foundNone).Once()
	f.on("POST", skyURL+"/onlinepresences", 200, `{"id":"3001"}`).Once()
	f.on("GET", phones123, 200, `{"count":1,"value":[{"id":"4000","number":"+18774466722","type":"Home","primary":true,"inactive":false}]}`).Once()
	f.on("PATCH", skyURL+"/phones/4000", 200, "").Once()

	p := johnDoe()
	p.Address = &Address{AddressLines: "100 Main St", City: "New York City", State: "NY", PostalCode: "10001", Type: "Home"}
	p.OnlinePresence = &OnlinePresence{Address: "https://example.com/john", Type: "Website"}
	p.Phone = &Phone{Number: "+1 (877) 446-6722", Type: "Mobile"}

	res, err := f.reconciler.ReconcileRecord(context.Background(), p, Settings{})
	require.NoError(t, err)
	assert.Equal(t, "123", res.ID)
	f.transport.AssertExpectations(t)
	f.transport.AssertNumberOfCalls(t, "Send", 9)

	address := f.requests("POST", skyURL+"/addresses")[0].Body.(reconcile.Fields)
	assert.Equal(t, "123", address["constituent_id"])
	assert.Equal(t, "100 Main St", address["address_lines"])
	assert.NotContains(t, address, "preferred")

	presence := f.requests("POST", skyURL+"/onlinepresences")[0].Body.(reconcile.Fields)
	assert.Equal(t, true, presence["primary"])

	phone := f.requests("PATCH", skyURL+"/phones/4000")[0].Body.(reconcile.Fields)
	assert.Equal(t, reconcile.Fields{"type": "Mobile", "inactive": false}, phone)
}

// TestReconcileRecord_DirectID tests that a supplied constituent id skips the search.
func TestReconcileRecord_DirectID(t *testing.T) {
	f := newFixture()
	f.on("GET", emails123, 200, foundNone).Once()
	f.on("POST", skyURL+"/emailaddresses", 200, `{"id":"2001"}`).Once()

	res, err := f.reconciler.ReconcileRecord(context.Background(), ConstituentPayload{
		ConstituentID: "123",
		Email:         &Email{Address: "john@example.biz", Primary: utils.BoolPtr(false)},
	}, Settings{})
	require.NoError(t, err)
	assert.Equal(t, "123", res.ID)
	f.transport.AssertNumberOfCalls(t, "Send", 2)

	email := f.requests("POST", skyURL+"/emailaddresses")[0].Body.(reconcile.Fields)
	assert.Equal(t, false, email["primary"])
}

func TestReconcileRecord_ReactivatesInactiveMatch(t *testing.T) {
	f := newFixture()
	f.on("GET", emails123, 200, `{"count":1,"value":[{"id":"2000","address":"john@example.biz","type":"Home","inactive":true}]}`).Once()
	f.on("PATCH", skyURL+"/emailaddresses/2000", 200, "").Once()

	_, err := f.reconciler.ReconcileRecord(context.Background(), ConstituentPayload{
		ConstituentID: "123",
		Email:         &Email{Address: "JOHN@example.biz"},
	}, Settings{})
	require.NoError(t, err)

	patch := f.requests("PATCH", skyURL+"/emailaddresses/2000")[0].Body.(reconcile.Fields)
	assert.Equal(t, reconcile.Fields{"inactive": false}, patch)
}

func TestReconcileRecord_SubRecordFatal(t *testing.T) {
	f := newFixture()
	f.on("GET", searchByEmail, 200, foundOne).Once()
	f.on("PATCH", constituent123, 200, "").Once()
	f.on("GET", emails123, 200, `{"count":1,"value":[{"id":"2000","address":"john@example.biz","type":"Home","inactive":false}]}`).Once()
	f.on("GET", presences123, 200, foundNone).Once()
	f.on("POST", skyURL+"/onlinepresences", 400, "").Once()

	p := johnDoe()
	p.OnlinePresence = &OnlinePresence{Address: "https://example.com/john"}

	_, err := f.reconciler.ReconcileRecord(context.Background(), p, Settings{})
	flt := fault.As(err)
	require.NotNil(t, flt)
	assert.Equal(t, fault.KindFatal, flt.Kind)
	assert.Equal(t, CodeUpdateConstituent, flt.Code)
	assert.Equal(t, http.StatusInternalServerError, flt.Status)
	assert.Equal(t, "One or more errors occurred when updating existing constituent: 400 error occurred when updating constituent online presence", flt.Message)
}

// TestReconcileRecord_SubRecordsRetryable tests that transient failures are folded in type order.
func TestReconcileRecord_SubRecordsRetryable(t *testing.T) {
	f := newFixture()
	f.on("GET", searchByEmail, 200, foundOne).Once()
	f.on("PATCH", constituent123, 200, "").Once()
	f.on("GET", addresses123, 200, foundNone).Once()
	f.on("POST", skyURL+"/addresses", 200, `{"id":"1001"}`).Once()
	f.on("GET", emails123, 429, "").Once()
	f.on("GET", presences123, 429, "").Once()
	f.on("GET", phones123, 429, "").Once()

	p := johnDoe()
	p.Address = &Address{AddressLines: "100 Main St", City: "New York City"}
	p.OnlinePresence = &OnlinePresence{Address: "https://example.com/john"}
	p.Phone = &Phone{Number: "8774466722"}

	_, err := f.reconciler.ReconcileRecord(context.Background(), p, Settings{})
	flt := fault.As(err)
	require.NotNil(t, flt)
	assert.Equal(t, fault.KindRetryable, flt.Kind)
	assert.Equal(t, "One or more errors occurred when updating existing constituent: "+
		"429 error occurred when updating constituent email, "+
		"429 error occurred when updating constituent online presence, "+
		"429 error occurred when updating constituent phone", flt.Message)
}

// TestReconcileRecord_FatalOutranksRetryable tests that a mix of failures is reported as fatal.
func TestReconcileRecord_FatalOutranksRetryable(t *testing.T) {
	f := newFixture()
	f.on("GET", emails123, 429, "").Once()
	f.on("GET", phones123, 200, foundNone).Once()
	f.on("POST", skyURL+"/phones", 403, "").Once()

	_, err := f.reconciler.ReconcileRecord(context.Background(), ConstituentPayload{
		ConstituentID: "123",
		Email:         &Email{Address: "john@example.biz"},
		Phone:         &Phone{Number: "8774466722"},
	}, Settings{})
	flt := fault.As(err)
	require.NotNil(t, flt)
	assert.Equal(t, fault.KindFatal, flt.Kind)
	assert.Contains(t, flt.Message, "429 error occurred when updating constituent email, 403 error occurred when updating constituent phone")
}

func TestReconcileRecord_ConstituentPatch(t *testing.T) {
	t.Run("FatalStopsImmediately", func(t *testing.T) {
		f := newFixture()
		f.on("PATCH", constituent123, 400, "").Once()

		_, err := f.reconciler.ReconcileRecord(context.Background(), ConstituentPayload{
			ConstituentID: "123",
			First:         "John",
			Email:         &Email{Address: "john@example.biz"},
		}, Settings{})
		flt := fault.As(err)
		require.NotNil(t, flt)
		assert.Equal(t, fault.KindFatal, flt.Kind)
		assert.Equal(t, "400 error occurred when updating constituent", flt.Message)
		f.transport.AssertNumberOfCalls(t, "Send", 1)
	})

	t.Run("RetryableIsDeferred", func(t *testing.T) {
		f := newFixture()
		f.on("PATCH", constituent123, 429, "").Once()
		f.on("GET", emails123, 200, foundNone).Once()
		f.on("POST", skyURL+"/emailaddresses", 200, `{"id":"2001"}`).Once()

		_, err := f.reconciler.ReconcileRecord(context.Background(), ConstituentPayload{
			ConstituentID: "123",
			First:         "John",
			Email:         &Email{Address: "john@example.biz"},
		}, Settings{})
		flt := fault.As(err)
		require.NotNil(t, flt)
		assert.Equal(t, fault.KindRetryable, flt.Kind)
		assert.Equal(t, updatePrefix+": 429 error occurred when updating constituent", flt.Message)
		f.transport.AssertExpectations(t)
	})
}

func TestReconcileRecord_SubRecordAlreadyExists(t *testing.T) {
	f := newFixture()
	f.on("GET", phones123, 200, foundNone).Once()
	f.on("POST", skyURL+"/phones", 409, `{"message":"Phone already exists"}`).Once()

	_, err := f.reconciler.ReconcileRecord(context.Background(), ConstituentPayload{
		ConstituentID: "123",
		Phone:         &Phone{Number: "8774466722"},
	}, Settings{})
	assert.NoError(t, err)
}

func TestReconcileRecord_TransportError(t *testing.T) {
	f := newFixture()
	f.transport.On("Send", mock.Anything, mocks.Request("GET", searchByEmail)).
		Return(nil, errors.New("connection refused")).Once()

	_, err := f.reconciler.ReconcileRecord(context.Background(), johnDoe(), Settings{})
	kind, _ := fault.KindOf(err)
	assert.Equal(t, fault.KindRetryable, kind)
}

func TestReconcileRecord_InvalidBirthdate(t *testing.T) {
	f := newFixture()
	p := johnDoe()
	p.Birthdate = "last spring"

	_, err := f.reconciler.ReconcileRecord(context.Background(), p, Settings{})
	kind, _ := fault.KindOf(err)
	assert.Equal(t, fault.KindValidation, kind)
	f.transport.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestClient_Credentials(t *testing.T) {
	f := newFixture()
	f.on("POST", constituents, 200, `{"id":"1"}`).Twice()

	_, err := f.reconciler.ReconcileRecord(context.Background(), ConstituentPayload{Last: "Doe"}, Settings{})
	require.NoError(t, err)
	_, err = f.reconciler.ReconcileRecord(context.Background(), ConstituentPayload{Last: "Doe"}, Settings{AccessToken: "other", SubscriptionKey: "other-key"})
	require.NoError(t, err)

	reqs := f.requests("POST", constituents)
	require.Len(t, reqs, 2)
	assert.Equal(t, "Bearer token", reqs[0].Headers["Authorization"])
	assert.Equal(t, "key", reqs[0].Headers["Bb-Api-Subscription-Key"])
	assert.Equal(t, "Bearer other", reqs[1].Headers["Authorization"])
	assert.Equal(t, "other-key", reqs[1].Headers["Bb-Api-Subscription-Key"])
}

func TestParseFuzzyDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *fuzzyDate
	}{
		{"Empty", "  ", nil},
		{"Year", "1990", &fuzzyDate{Y: 1990}},
		{"YearMonth", "1990-05", &fuzzyDate{M: 5, Y: 1990}},
		{"Date", "1990-05-17", &fuzzyDate{D: 17, M: 5, Y: 1990}},
		{"LocalDatetime", "1990-05-17T08:30:00", &fuzzyDate{D: 17, M: 5, Y: 1990}},
		{"Timestamp", "1990-05-17T08:30:00Z", &fuzzyDate{D: 17, M: 5, Y: 1990}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFuzzyDate("birthdate", tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"1990-13", "90", "May 1990"} {
		_, err := parseFuzzyDate("birthdate", bad)
		kind, _ := fault.KindOf(err)
		assert.Equal(t, fault.KindValidation, kind, bad)
	}
}
