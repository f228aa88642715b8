package accountrepo_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/go-fintrack/fintrack/internal/accountrepo"
	"github.com/go-fintrack/fintrack/internal/domain"
	"github.com/go-fintrack/fintrack/internal/test"
	"github.com/go-fintrack/fintrack/pkg/configpkg"
	"github.com/go-fintrack/fintrack/pkg/dbpkg"
	"github.com/go-fintrack/fintrack/pkg/randompkg"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testConfig configpkg.Config

func TestMain(m *testing.M) {
	var err error

	testConfig, err = configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	os.Exit(m.Run())
}

func TestCreate(t *testing.T) {
	tx := dbpkg.SetupTX(t, testConfig.DBDriver, testConfig.DBSource)
	testRepo := accountrepo.NewRepoPGS(tx)

	arg := domain.CreateAccountParams{
		UserID:  randompkg.UserID(),
		Name:    randompkg.AccountName(),
		Balance: randompkg.MoneyAmountBetween(100, 1_000),
	}

	account, err := testRepo.Create(context.Background(), arg)
	require.NoError(t, err)
	require.NotEmpty(t, account)

	require.Equal(t, arg.UserID, account.UserID)
	require.Equal(t, arg.Name, account.Name)
	require.True(t, decimal.RequireFromString(arg.Balance).Equal(decimal.RequireFromString(account.Balance)))

	require.NotZero(t, account.ID)
	require.NotZero(t, account.CreatedAt)
	require.NotZero(t, account.UpdatedAt)
}

func TestCreateNegativeBalance(t *testing.T) {
	tx := dbpkg.SetupTX(t, testConfig.DBDriver, testConfig.DBSource)
	testRepo := accountrepo.NewRepoPGS(tx)

	arg := domain.CreateAccountParams{
		UserID:  randompkg.UserID(),
		Name:    randompkg.AccountName(),
		Balance: "-1",
	}

	_, err := testRepo.Create(context.Background(), arg)
	require.ErrorIs(t, err, domain.ErrNegativeAmount)
}

func TestGet(t *testing.T) {
	tx := dbpkg.SetupTX(t, testConfig.DBDriver, testConfig.DBSource)
	testRepo := accountrepo.NewRepoPGS(tx)

	seeded := test.SeedRandomAccount(t, tx)

	account, err := testRepo.Get(context.Background(), seeded.ID)
	require.NoError(t, err)

	compareTimes := cmpopts.EquateApproxTime(time.Second)
	if diff := cmp.Diff(seeded, account, compareTimes); diff != "" {
		t.Errorf("account mismatch (-want +got):\n%s", diff)
	}

	_, err = testRepo.Get(context.Background(), 0)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestGetForUser(t *testing.T) {
	tx := dbpkg.SetupTX(t, testConfig.DBDriver, testConfig.DBSource)
	testRepo := accountrepo.NewRepoPGS(tx)

	seeded := test.SeedRandomAccount(t, tx)

	account, err := testRepo.GetForUser(context.Background(), seeded.ID, seeded.UserID)
	require.NoError(t, err)

	compareTimes := cmpopts.EquateApproxTime(time.Second)
	if diff := cmp.Diff(seeded, account, compareTimes); diff != "" {
		t.Errorf("account mismatch (-want +got):\n%s", diff)
	}

	_, err = testRepo.GetForUser(context.Background(), seeded.ID, seeded.UserID+1)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAddBalance(t *testing.T) {
	tx := dbpkg.SetupTX(t, testConfig.DBDriver, testConfig.DBSource)
	testRepo := accountrepo.NewRepoPGS(tx)

	seeded := test.SeedAccount(t, tx, randompkg.UserID(), "100")

	account, err := testRepo.AddBalance(context.Background(), "-40", seeded.ID)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(60).Equal(decimal.RequireFromString(account.Balance)))

	account, err = testRepo.AddBalance(context.Background(), "15.50", seeded.ID)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("75.50").Equal(decimal.RequireFromString(account.Balance)))
}

func TestAddBalanceInsufficient(t *testing.T) {
	tx := dbpkg.SetupTX(t, testConfig.DBDriver, testConfig.DBSource)
	testRepo := accountrepo.NewRepoPGS(tx)

	seeded := test.SeedAccount(t, tx, randompkg.UserID(), "10")

	_, err := testRepo.AddBalance(context.Background(), "-10.01", seeded.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
}

func TestAddBalanceAccountNotFound(t *testing.T) {
	tx := dbpkg.SetupTX(t, testConfig.DBDriver, testConfig.DBSource)
	testRepo := accountrepo.NewRepoPGS(tx)

	_, err := testRepo.AddBalance(context.Background(), "10", 0)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestList(t *testing.T) {
	tx := dbpkg.SetupTX(t, testConfig.DBDriver, testConfig.DBSource)
	testRepo := accountrepo.NewRepoPGS(tx)

	userID := randompkg.UserID()
	for i := 0; i < 5; i++ {
		test.SeedAccount(t, tx, userID, randompkg.MoneyAmountBetween(1, 100))
	}

	accounts, err := testRepo.List(context.Background(), userID, 3, 0)
	require.NoError(t, err)
	require.Len(t, accounts, 3)

	accounts, err = testRepo.List(context.Background(), userID, 3, 3)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
}

func TestListRecent(t *testing.T) {
	tx := dbpkg.SetupTX(t, testConfig.DBDriver, testConfig.DBSource)
	testRepo := accountrepo.NewRepoPGS(tx)

	userID := randompkg.UserID()

	seeded := make([]domain.Account, 6)
	for i := range seeded {
		seeded[i] = test.SeedAccount(t, tx, userID, randompkg.MoneyAmountBetween(1, 100))
	}

	accounts, err := testRepo.ListRecent(context.Background(), userID, 4)
	require.NoError(t, err)
	require.Len(t, accounts, 4)

	// Newest first.
	for i, a := range accounts {
		require.Equal(t, seeded[len(seeded)-1-i].ID, a.ID)
	}
}
