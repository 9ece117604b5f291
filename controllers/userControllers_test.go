package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"breboot/authentication"
	"breboot/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createUser(t *testing.T, db *gorm.DB, userType string, points int) (models.User, string) {
	t.Helper()

	user := models.User{
		Name:     "Test " + userType,
		Phone:    "9800000001",
		UserType: userType,
		Points:   points,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := authentication.GenerateUserToken(user.ID, user.UserType)
	require.NoError(t, err)
	return user, token
}

func authedGet(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	return w
}

func TestUserRoutesRequireToken(t *testing.T) {
	setupTestDB(t)
	router := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user/getuserdetails", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = authedGet(router, "/user/getuserdetails", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetUserDetailsHidesPassword(t *testing.T) {
	db := setupTestDB(t)
	router := testRouter()

	user, token := createUser(t, db, models.UserTypeDoctor, 500)
	require.NoError(t, db.Model(&user).Update("password", "hashed-secret").Error)

	w := authedGet(router, "/user/getuserdetails", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "hashed-secret")
	assert.Contains(t, w.Body.String(), user.Name)
}

func TestWeeksAndChallengesAreDoctorOnly(t *testing.T) {
	db := setupTestDB(t)
	router := testRouter()

	require.NoError(t, db.Create(&models.Week{Name: "Week 1", Status: "Active"}).Error)

	_, otherToken := createUser(t, db, models.UserTypeOther, 50)
	for _, path := range []string{"/user/weeks", "/user/challenges"} {
		w := authedGet(router, path, otherToken)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
	}

	doctor := models.User{Name: "Doc", Phone: "9800000002", UserType: models.UserTypeDoctor}
	require.NoError(t, db.Create(&doctor).Error)
	doctorToken, err := authentication.GenerateUserToken(doctor.ID, doctor.UserType)
	require.NoError(t, err)

	w := authedGet(router, "/user/weeks", doctorToken)
	assert.Equal(t, http.StatusOK, w.Code)

	// No challenges seeded yet.
	w = authedGet(router, "/user/challenges", doctorToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRedeemReward(t *testing.T) {
	db := setupTestDB(t)
	router := testRouter()

	user, token := createUser(t, db, models.UserTypeDoctor, 500)
	reward := models.Reward{Name: "Water Bottle", Points: 200}
	require.NoError(t, db.Create(&reward).Error)

	body, _ := json.Marshal(map[string]uint{"rewardId": reward.ID})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/user/redeem", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 300, resp["remainingPoints"])

	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, 300, updated.Points)

	var redeem models.Redeem
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&redeem).Error)
	assert.Equal(t, reward.ID, redeem.RewardID)
}

func TestRedeemRewardInsufficientPoints(t *testing.T) {
	db := setupTestDB(t)
	router := testRouter()

	user, token := createUser(t, db, models.UserTypeOther, 50)
	reward := models.Reward{Name: "Water Bottle", Points: 200}
	require.NoError(t, db.Create(&reward).Error)

	body, _ := json.Marshal(map[string]uint{"rewardId": reward.ID})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/user/redeem", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Neither the balance nor the redemption table changed.
	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, 50, updated.Points)

	var count int64
	db.Model(&models.Redeem{}).Count(&count)
	assert.Zero(t, count)
}

func TestRedeemRewardUnknownReward(t *testing.T) {
	db := setupTestDB(t)
	router := testRouter()

	_, token := createUser(t, db, models.UserTypeDoctor, 500)

	body, _ := json.Marshal(map[string]uint{"rewardId": 999})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/user/redeem", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
