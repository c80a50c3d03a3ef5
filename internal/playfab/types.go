package playfab

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	errorCodeAccountNotFound = 1001

	errAccountNotFound      = "AccountNotFound"
	errNotAuthenticated     = "NotAuthenticated"
	errInvalidSessionTicket = "InvalidSessionTicket"
)

type envelope struct {
	Code         int             `json:"code"`
	Status       string          `json:"status"`
	Data         json.RawMessage `json:"data"`
	Error        string          `json:"error"`
	ErrorCode    int             `json:"errorCode"`
	ErrorMessage string          `json:"errorMessage"`
}

type APIError struct {
	HTTPStatus int
	Code       string
	ErrorCode  int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("playfab error %d %s (%d): %s", e.HTTPStatus, e.Code, e.ErrorCode, e.Message)
}

func (e *APIError) AccountNotFound() bool {
	return e.Code == errAccountNotFound || e.ErrorCode == errorCodeAccountNotFound
}

func (e *APIError) SessionRejected() bool {
	if e.HTTPStatus == http.StatusUnauthorized {
		return true
	}
	return e.Code == errNotAuthenticated || e.Code == errInvalidSessionTicket
}

type loginWithCustomIDRequest struct {
	TitleID       string `json:"TitleId"`
	CustomID      string `json:"CustomId"`
	CreateAccount bool   `json:"CreateAccount"`
}

type loginResult struct {
	SessionTicket string `json:"SessionTicket"`
	PlayFabID     string `json:"PlayFabId"`
}

type getAccountInfoRequest struct {
	PlayFabID string `json:"PlayFabId"`
}

type getAccountInfoResult struct {
	AccountInfo struct {
		PlayFabID string `json:"PlayFabId"`
		Username  string `json:"Username"`
		TitleInfo struct {
			DisplayName string `json:"DisplayName"`
		} `json:"TitleInfo"`
	} `json:"AccountInfo"`
}
