package controllers_test

import (
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"breboot/configuration"
	"breboot/controllers"
	"breboot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePaymentHashDeterministic(t *testing.T) {
	first, err := controllers.GeneratePaymentHash("T1", "100.00", "P", "A", "a@x.com", "key", "salt")
	require.NoError(t, err)
	second, err := controllers.GeneratePaymentHash("T1", "100.00", "P", "A", "a@x.com", "key", "salt")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGeneratePaymentHashFieldSensitivity(t *testing.T) {
	base, err := controllers.GeneratePaymentHash("T1", "100.00", "P", "A", "a@x.com", "key", "salt")
	require.NoError(t, err)

	variants := [][7]string{
		{"T2", "100.00", "P", "A", "a@x.com", "key", "salt"},
		{"T1", "100.01", "P", "A", "a@x.com", "key", "salt"},
		{"T1", "100.00", "Q", "A", "a@x.com", "key", "salt"},
		{"T1", "100.00", "P", "B", "a@x.com", "key", "salt"},
		{"T1", "100.00", "P", "A", "b@x.com", "key", "salt"},
		{"T1", "100.00", "P", "A", "a@x.com", "key2", "salt"},
		{"T1", "100.00", "P", "A", "a@x.com", "key", "salt2"},
	}
	for _, v := range variants {
		got, err := controllers.GeneratePaymentHash(v[0], v[1], v[2], v[3], v[4], v[5], v[6])
		require.NoError(t, err)
		assert.NotEqual(t, base, got)
	}
}

func TestGeneratePaymentHashMissingFields(t *testing.T) {
	_, err := controllers.GeneratePaymentHash("", "100.00", "P", "A", "a@x.com", "key", "salt")
	assert.ErrorIs(t, err, controllers.ErrMissingPaymentFields)

	_, err = controllers.GeneratePaymentHash("T1", "100.00", "P", "A", "", "key", "salt")
	assert.ErrorIs(t, err, controllers.ErrMissingPaymentFields)
}

func TestGeneratePaymentHashKnownVector(t *testing.T) {
	// Independently assemble the canonical gateway string and digest it.
	canonical := "key|T1|100.00|P|A|a@x.com||||||||||salt"
	sum := sha512.Sum512([]byte(canonical))
	expected := hex.EncodeToString(sum[:])

	got, err := controllers.GeneratePaymentHash("T1", "100.00", "P", "A", "a@x.com", "key", "salt")
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestGenerateReverseHashKnownVector(t *testing.T) {
	canonical := "salt|success||||||||||a@x.com|A|P|100.00|T1|key"
	sum := sha512.Sum512([]byte(canonical))
	expected := hex.EncodeToString(sum[:])

	got := controllers.GenerateReverseHash("success", "T1", "100.00", "P", "A", "a@x.com", "key", "salt")
	assert.Equal(t, expected, got)
}

func sampleCallback(status, key, salt string) models.PaymentCallback {
	cb := models.PaymentCallback{
		Txnid:       "T1",
		Amount:      "100.00",
		Productinfo: "P",
		Firstname:   "A",
		Email:       "a@x.com",
		Status:      status,
		Mihpayid:    "MIH123",
	}
	cb.Hash = controllers.GenerateReverseHash(cb.Status, cb.Txnid, cb.Amount, cb.Productinfo, cb.Firstname, cb.Email, key, salt)
	return cb
}

func TestVerifyCallbackHash(t *testing.T) {
	// Acceptance is independent of the status value.
	for _, status := range []string{"success", "failure"} {
		cb := sampleCallback(status, "key", "salt")
		assert.True(t, controllers.VerifyCallbackHash(cb, "key", "salt"))
	}

	// Uppercase gateway hashes are accepted too.
	cb := sampleCallback("success", "key", "salt")
	cb.Hash = strings.ToUpper(cb.Hash)
	assert.True(t, controllers.VerifyCallbackHash(cb, "key", "salt"))

	// Any field drift breaks the hash.
	cb = sampleCallback("success", "key", "salt")
	cb.Amount = "999.00"
	assert.False(t, controllers.VerifyCallbackHash(cb, "key", "salt"))

	cb = sampleCallback("success", "key", "salt")
	cb.Hash = cb.Hash[:len(cb.Hash)-1] + "0"
	assert.False(t, controllers.VerifyCallbackHash(cb, "key", "salt"))
}

func TestPaymentHashEndpoint(t *testing.T) {
	setupTestDB(t)
	router := testRouter()

	body := `{"txnid":"T1","amount":"100.00","productinfo":"P","firstname":"A","email":"a@x.com"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payment/hash", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Hash string `json:"hash"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	expected, err := controllers.GeneratePaymentHash("T1", "100.00", "P", "A", "a@x.com",
		configuration.Config.PayuKey, configuration.Config.PayuSalt)
	require.NoError(t, err)
	assert.Equal(t, expected, resp.Hash)
}

func TestVerifyPaymentRejectsBadHash(t *testing.T) {
	db := setupTestDB(t)
	router := testRouter()

	cb := sampleCallback("success", configuration.Config.PayuKey, configuration.Config.PayuSalt)
	cb.Hash = "deadbeef"

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payment/verify", strings.NewReader(callbackForm(cb)))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// No payment state change on rejection.
	var count int64
	db.Model(&models.Payment{}).Count(&count)
	assert.Zero(t, count)
}

type fakeReceipts struct {
	mu   sync.Mutex
	sent []models.Payment
}

func (f *fakeReceipts) SendReceipt(p models.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, p)
	return nil
}

func (f *fakeReceipts) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func swapReceipts(t *testing.T) *fakeReceipts {
	t.Helper()
	receipts := &fakeReceipts{}
	controllers.Receipts = receipts
	t.Cleanup(func() { controllers.Receipts = controllers.MailReceiptSender{} })
	return receipts
}

func TestVerifyPaymentCompletesAndSendsReceipt(t *testing.T) {
	db := setupTestDB(t)
	router := testRouter()
	receipts := swapReceipts(t)

	payer := models.User{Name: "A", Email: "a@x.com", UserType: models.UserTypeDoctor}
	require.NoError(t, db.Create(&payer).Error)

	cb := sampleCallback("success", configuration.Config.PayuKey, configuration.Config.PayuSalt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payment/verify", strings.NewReader(callbackForm(cb)))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, configuration.Config.SuccessRedirectURL, w.Header().Get("Location"))

	var payment models.Payment
	require.NoError(t, db.Where("txnid = ?", cb.Txnid).First(&payment).Error)
	assert.Equal(t, models.PaymentCompleted, payment.Status)
	assert.Equal(t, payer.ID, payment.UserID)

	require.Equal(t, 1, receipts.count())
	assert.Equal(t, cb.Txnid, receipts.sent[0].Txnid)
}

func TestVerifyPaymentReplayIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	router := testRouter()
	receipts := swapReceipts(t)

	cb := sampleCallback("success", configuration.Config.PayuKey, configuration.Config.PayuSalt)

	// Gateways retry callbacks; the second delivery must repeat the redirect
	// without a new row or a second receipt.
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payment/verify", strings.NewReader(callbackForm(cb)))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, configuration.Config.SuccessRedirectURL, w.Header().Get("Location"))
	}

	var count int64
	db.Model(&models.Payment{}).Where("txnid = ?", cb.Txnid).Count(&count)
	assert.EqualValues(t, 1, count)
	assert.Equal(t, 1, receipts.count())
}

func TestVerifyPaymentRecordsFailedPayment(t *testing.T) {
	db := setupTestDB(t)
	router := testRouter()

	cb := sampleCallback("failure", configuration.Config.PayuKey, configuration.Config.PayuSalt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payment/verify", strings.NewReader(callbackForm(cb)))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, configuration.Config.FailureRedirectURL, w.Header().Get("Location"))

	var payment models.Payment
	require.NoError(t, db.Where("txnid = ?", cb.Txnid).First(&payment).Error)
	assert.Equal(t, models.PaymentFailed, payment.Status)
	assert.Equal(t, "MIH123", payment.PayuID)
	assert.Equal(t, 100.0, payment.Amount)
}

func callbackForm(cb models.PaymentCallback) string {
	values := url.Values{}
	values.Set("txnid", cb.Txnid)
	values.Set("amount", cb.Amount)
	values.Set("productinfo", cb.Productinfo)
	values.Set("firstname", cb.Firstname)
	values.Set("email", cb.Email)
	values.Set("status", cb.Status)
	values.Set("mihpayid", cb.Mihpayid)
	values.Set("hash", cb.Hash)
	return values.Encode()
}
