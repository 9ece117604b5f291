package controllers

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"breboot/configuration"
	"breboot/models"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrMissingPaymentFields = errors.New("mandatory fields missing")

// GeneratePaymentHash builds the forward hash authenticating an outbound
// gateway request: sha512 of
// key|txnid|amount|productinfo|firstname|email|udf1..udf10|salt, where the
// ten udf fields are empty.
func GeneratePaymentHash(txnid, amount, productinfo, firstname, email, key, salt string) (string, error) {
	if txnid == "" || amount == "" || productinfo == "" || firstname == "" || email == "" {
		return "", ErrMissingPaymentFields
	}

	hashString := fmt.Sprintf("%s|%s|%s|%s|%s|%s||||||||||%s",
		key, txnid, amount, productinfo, firstname, email, salt)
	sum := sha512.Sum512([]byte(hashString))
	return hex.EncodeToString(sum[:]), nil
}

// GenerateReverseHash builds the hash the gateway sends on its callback:
// sha512 of salt|status|udf10..udf1|email|firstname|productinfo|amount|txnid|key.
func GenerateReverseHash(status, txnid, amount, productinfo, firstname, email, key, salt string) string {
	hashString := fmt.Sprintf("%s|%s||||||||||%s|%s|%s|%s|%s|%s",
		salt, status, email, firstname, productinfo, amount, txnid, key)
	sum := sha512.Sum512([]byte(hashString))
	return hex.EncodeToString(sum[:])
}

// VerifyCallbackHash recomputes the reverse hash for the callback payload and
// compares it against the gateway-supplied value.
func VerifyCallbackHash(cb models.PaymentCallback, key, salt string) bool {
	expected := GenerateReverseHash(cb.Status, cb.Txnid, cb.Amount, cb.Productinfo, cb.Firstname, cb.Email, key, salt)
	supplied := strings.ToLower(cb.Hash)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(supplied)) == 1
}

// PaymentHash returns the forward hash for a transaction.
func PaymentHash(c *gin.Context) {
	var req models.PaymentHashRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := GeneratePaymentHash(req.Txnid, req.Amount, req.Productinfo, req.Firstname, req.Email,
		configuration.Config.PayuKey, configuration.Config.PayuSalt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mandatory fields missing"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"hash": hash})
}

// ProcessPayment responds with an auto-submitting form that forwards the
// buyer to the gateway's checkout page. The gateway expects a form POST, not
// a JSON call.
func ProcessPayment(c *gin.Context) {
	var req models.PaymentHashRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := GeneratePaymentHash(req.Txnid, req.Amount, req.Productinfo, req.Firstname, req.Email,
		configuration.Config.PayuKey, configuration.Config.PayuSalt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mandatory fields missing"})
		return
	}

	form := fmt.Sprintf(`
       <form id="payuForm" action="%s" method="POST">
         <input type="hidden" name="key" value="%s" />
         <input type="hidden" name="txnid" value="%s" />
         <input type="hidden" name="amount" value="%s" />
         <input type="hidden" name="productinfo" value="%s" />
         <input type="hidden" name="firstname" value="%s" />
         <input type="hidden" name="email" value="%s" />
         <input type="hidden" name="phone" value="%s" />
         <input type="hidden" name="surl" value="%s" />
         <input type="hidden" name="furl" value="%s" />
         <input type="hidden" name="hash" value="%s" />
         <input type="hidden" name="service_provider" value="payu_paisa" />
       </form>
       <script>document.getElementById("payuForm").submit();</script>`,
		configuration.Config.PayuAPIURL, configuration.Config.PayuKey,
		req.Txnid, req.Amount, req.Productinfo, req.Firstname, req.Email,
		req.Phone, req.Surl, req.Furl, hash)

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(form))
}

// VerifyPayment is the gateway callback. The request is authenticated solely
// by the reverse hash; a mismatch changes no payment state.
func VerifyPayment(c *gin.Context) {
	var cb models.PaymentCallback
	if err := c.ShouldBind(&cb); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !VerifyCallbackHash(cb, configuration.Config.PayuKey, configuration.Config.PayuSalt) {
		log.WithField("txnid", cb.Txnid).Warn("Invalid hash on payment callback")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid hash"})
		return
	}

	amount, err := strconv.ParseFloat(cb.Amount, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	// Gateways retry callbacks; an existing row for the txnid means the
	// settlement is already recorded, so just repeat the redirect.
	var existing models.Payment
	if err := configuration.DB.Where("txnid = ?", cb.Txnid).First(&existing).Error; err == nil {
		if existing.Status == models.PaymentCompleted {
			c.Redirect(http.StatusFound, configuration.Config.SuccessRedirectURL)
		} else {
			c.Redirect(http.StatusFound, configuration.Config.FailureRedirectURL)
		}
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("Error checking payment: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error in verifying payment"})
		return
	}

	// Associate the payment with an account when the payer email matches one.
	var userID uint
	var user models.User
	if err := configuration.DB.Where("email = ?", cb.Email).First(&user).Error; err == nil {
		userID = user.ID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("Error looking up payer: ", err)
	}

	payment := models.Payment{
		UserID:      userID,
		Txnid:       cb.Txnid,
		Amount:      amount,
		Productinfo: cb.Productinfo,
		Firstname:   cb.Firstname,
		Email:       cb.Email,
		PayuID:      cb.Mihpayid,
		Status:      models.PaymentFailed,
	}
	if cb.Status == "success" {
		payment.Status = models.PaymentCompleted
	}

	if err := configuration.DB.Create(&payment).Error; err != nil {
		log.Error("Error saving payment: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error in verifying payment"})
		return
	}

	if payment.Status == models.PaymentCompleted {
		// Receipt delivery is best effort; the settlement already happened.
		if err := Receipts.SendReceipt(payment); err != nil {
			log.Error("Error sending payment receipt: ", err)
		}
		c.Redirect(http.StatusFound, configuration.Config.SuccessRedirectURL)
		return
	}

	c.Redirect(http.StatusFound, configuration.Config.FailureRedirectURL)
}
