package httpserver_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/cmd/httpserver"
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

func setupServer(t *testing.T) *httpserver.Server {
	t.Helper()

	server, err := httpserver.New(zerolog.Nop(), configpkg.Config{
		MetricsPath:     "/metrics",
		DefaultPageSize: 10,
	})
	require.NoError(t, err)

	return server
}

func do(t *testing.T, server http.Handler, method, url string, body, data any) (int, web.Response) {
	t.Helper()

	var reader io.Reader = http.NoBody

	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)

		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	res := web.Response{Data: data}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))

	return recorder.Code, res
}

func createAccount(t *testing.T, server http.Handler, id int64, balance, accountType string) domain.Account {
	t.Helper()

	var got struct {
		Account domain.Account `json:"account"`
	}

	code, res := do(t, server, http.MethodPost, "/accounts", domain.CreateAccountParams{
		ID:              id,
		LastName:        "Miles",
		FirstName:       "Moses",
		StartingBalance: balance,
		AccountType:     accountType,
	}, &got)
	require.Equal(t, http.StatusOK, code, res.Error)

	return got.Account
}

func getAccount(t *testing.T, server http.Handler, id int64) domain.Account {
	t.Helper()

	var got struct {
		Account domain.Account `json:"account"`
	}

	code, res := do(t, server, http.MethodGet, fmt.Sprintf("/accounts/%d", id), nil, &got)
	require.Equal(t, http.StatusOK, code, res.Error)

	return got.Account
}

func TestAccountLifecycle(t *testing.T) {
	server := setupServer(t)

	created := createAccount(t, server, 20403, "4000.30", "asset")

	want := domain.Account{
		ID:              20403,
		LastName:        "Miles",
		FirstName:       "Moses",
		AccountType:     "asset",
		StartingBalance: "4000.30",
		Balance:         "4000.30",
	}
	if diff := cmp.Diff(want, created); diff != "" {
		t.Errorf("Account mismatch (-want +got):\n%s", diff)
	}

	code, res := do(t, server, http.MethodPost, "/accounts", domain.CreateAccountParams{
		ID:              20403,
		LastName:        "Miles",
		FirstName:       "Moses",
		StartingBalance: "1",
		AccountType:     "asset",
	}, nil)
	require.Equal(t, http.StatusConflict, code)
	require.Equal(t, domain.ErrAccountAlreadyExists.Error(), res.Error)

	var entry domain.EntryResult

	code, res = do(t, server, http.MethodPost, "/accounts/20403/deposits", gin.H{
		"narrative": "Initial Deposit",
		"amount":    "500.00",
	}, &entry)
	require.Equal(t, http.StatusOK, code, res.Error)
	require.Equal(t, "4500.30", entry.Account.Balance)
	require.Equal(t, "credit", entry.Entry.Direction)

	code, res = do(t, server, http.MethodPost, "/accounts/20403/withdrawals", gin.H{
		"narrative": "Rent",
		"amount":    "5000.00",
	}, &entry)
	require.Equal(t, http.StatusOK, code, res.Error)
	require.Equal(t, "-499.70", entry.Account.Balance)
	require.Equal(t, "debit", entry.Entry.Direction)

	var entries struct {
		Entries []domain.Entry `json:"entries"`
	}

	code, res = do(t, server, http.MethodGet, "/accounts/20403/entries", nil, &entries)
	require.Equal(t, http.StatusOK, code, res.Error)

	wantEntries := []domain.Entry{
		{AccountID: 20403, Narrative: "Initial Deposit", Amount: "500.00", Direction: "credit"},
		{AccountID: 20403, Narrative: "Rent", Amount: "5000.00", Direction: "debit"},
	}
	if diff := cmp.Diff(wantEntries, entries.Entries, cmpopts.IgnoreFields(domain.Entry{}, "TransactionID", "Date")); diff != "" {
		t.Errorf("Entries mismatch (-want +got):\n%s", diff)
	}

	code, res = do(t, server, http.MethodGet, "/accounts/1", nil, nil)
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, domain.ErrAccountNotFound.Error(), res.Error)
}

func TestListAccounts(t *testing.T) {
	server := setupServer(t)

	createAccount(t, server, 0, "1.00", "asset")
	createAccount(t, server, 0, "2.00", "liability")
	createAccount(t, server, 0, "3.00", "asset")

	var got struct {
		Accounts []domain.Account `json:"accounts"`
	}

	code, res := do(t, server, http.MethodGet, "/accounts?page_id=2&page_size=2", nil, &got)
	require.Equal(t, http.StatusOK, code, res.Error)
	require.Len(t, got.Accounts, 1)
	require.Equal(t, int64(3), got.Accounts[0].ID)
	require.Equal(t, "3.00", got.Accounts[0].Balance)
}

func TestTransfer(t *testing.T) {
	server := setupServer(t)

	createAccount(t, server, 20403, "4000.30", "asset")
	createAccount(t, server, 98345, "2809.01", "asset")

	var got struct {
		Transfer domain.TransferResult `json:"transfer"`
	}

	code, res := do(t, server, http.MethodPost, "/transfers", gin.H{
		"from_account_id": 20403,
		"to_account_id":   98345,
		"amount":          "400.00",
	}, &got)
	require.Equal(t, http.StatusOK, code, res.Error)
	require.Equal(t, "3600.30", got.Transfer.FromAccount.Balance)
	require.Equal(t, "3209.01", got.Transfer.ToAccount.Balance)
	require.Len(t, got.Transfer.Entries, 2)

	for _, e := range got.Transfer.Entries {
		require.Equal(t, got.Transfer.TransactionID, e.TransactionID)
	}

	code, res = do(t, server, http.MethodPost, "/transfers", gin.H{
		"from_account_id": 20403,
		"to_account_id":   98345,
		"amount":          "3600.31",
	}, nil)
	require.Equal(t, http.StatusBadRequest, code)
	require.Contains(t, res.Error, "insufficient funds")

	require.Equal(t, "3600.30", getAccount(t, server, 20403).Balance)
	require.Equal(t, "3209.01", getAccount(t, server, 98345).Balance)
}

func TestPayBills(t *testing.T) {
	server := setupServer(t)

	createAccount(t, server, 20403, "100.00", "asset")
	createAccount(t, server, 3452, "30.52", "liability")
	createAccount(t, server, 309201, "498.22", "liability")

	var got struct {
		Bills domain.PayBillsResult `json:"bills"`
	}

	code, res := do(t, server, http.MethodPost, "/bills", gin.H{
		"source_account_id": 20403,
		"creditor_ids":      []int64{3452, 309201},
	}, &got)
	require.Equal(t, http.StatusOK, code, res.Error)

	require.Equal(t, "69.48", got.Bills.Source.Balance)
	require.Equal(t, []int64{3452}, got.Bills.Paid)
	require.Len(t, got.Bills.Failed, 1)
	require.Equal(t, int64(309201), got.Bills.Failed[0].CreditorID)
	require.Equal(t, "498.22", got.Bills.Failed[0].Amount)

	require.Equal(t, "0.00", getAccount(t, server, 3452).Balance)
	require.Equal(t, "498.22", getAccount(t, server, 309201).Balance)
}

func TestMetrics(t *testing.T) {
	server := setupServer(t)

	createAccount(t, server, 1, "10.00", "asset")
	createAccount(t, server, 2, "0", "asset")

	code, res := do(t, server, http.MethodPost, "/transfers", gin.H{
		"from_account_id": 1,
		"to_account_id":   2,
		"amount":          "20.00",
	}, nil)
	require.Equal(t, http.StatusBadRequest, code, res.Error)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(),
		`ledger_operations_total{operation="transfer",outcome="insufficient_funds"} 1`)
}

func TestTransferOutOfRange(t *testing.T) {
	server := setupServer(t)

	createAccount(t, server, 1, "1.00", "asset")
	createAccount(t, server, 2, "92233720368547758.07", "asset")

	code, res := do(t, server, http.MethodPost, "/transfers", gin.H{
		"from_account_id": 1,
		"to_account_id":   2,
		"amount":          "1.00",
	}, nil)
	require.Equal(t, http.StatusBadRequest, code)
	require.Contains(t, res.Error, "out of range")

	require.Equal(t, "1.00", getAccount(t, server, 1).Balance)
	require.Equal(t, "92233720368547758.07", getAccount(t, server, 2).Balance)
}

func TestHugeExponentAmount(t *testing.T) {
	server := setupServer(t)

	createAccount(t, server, 1, "1.00", "asset")

	for _, amount := range []string{"1e20000000", "1e-20000000"} {
		start := time.Now()

		code, _ := do(t, server, http.MethodPost, "/accounts/1/deposits", gin.H{
			"narrative": "Deposit",
			"amount":    amount,
		}, nil)
		require.Equal(t, http.StatusBadRequest, code, amount)
		require.Less(t, time.Since(start), time.Second, amount)
	}

	require.Equal(t, "1.00", getAccount(t, server, 1).Balance)
}
