package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"earning_admin/internal/domain"
	"earning_admin/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore keeps the document as encoded JSON so every Load returns a fresh copy
type memStore struct {
	data    []byte
	version int64
	saves   int
}

func newMemStore(t *testing.T, doc *domain.Document) *memStore {
	t.Helper()
	b, err := json.Marshal(doc)
	require.NoError(t, err)
	return &memStore{data: b, version: 1}
}

func (m *memStore) Load(ctx context.Context) (*domain.Document, int64, error) {
	doc := domain.NewDocument()
	if m.data == nil {
		return doc, 0, nil
	}
	if err := json.Unmarshal(m.data, doc); err != nil {
		return nil, 0, err
	}
	doc.Normalize()
	return doc, m.version, nil
}

func (m *memStore) Update(ctx context.Context, fn store.Mutation) error {
	doc, _, err := m.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		if errors.Is(err, store.ErrSkip) {
			return nil
		}
		return err
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	m.data = b
	m.version++
	m.saves++
	return nil
}

func (m *memStore) DeleteDocument(ctx context.Context) error {
	m.data = nil
	m.version = 0
	return nil
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedDocument() *domain.Document {
	doc := domain.NewDocument()
	doc.Users = []domain.User{
		{ID: 1, Name: "Rahim", Phone: "01711111111", Balance: d("100"), TotalDeposit: d("100"), TotalWithdraw: d("0"), Plan: domain.NoPlan},
		{ID: 2, Name: "Karim", Phone: "01822222222", Balance: d("5"), TotalDeposit: d("5"), TotalWithdraw: d("0"), Plan: "Gold"},
	}
	date := domain.Timestamp(`"2025-01-02T03:04:05.000Z"`)
	doc.Deposits = []domain.Deposit{
		{ID: 10, UserPhone: "01711111111", Amount: d("50.25"), Method: "bkash", TrxID: "TX1", Date: date, Status: domain.StatusPending},
		{ID: 11, UserPhone: "01900000000", Amount: d("20"), Method: "nagad", Date: date, Status: domain.StatusPending},
	}
	doc.Withdraws = []domain.Withdraw{
		{ID: 20, UserPhone: "01711111111", Amount: d("40"), Method: "bkash", Wallet: "017", Date: date, Status: domain.StatusPending},
		{ID: 21, UserPhone: "01822222222", Amount: d("10"), Method: "nagad", Wallet: "018", Date: date, Status: domain.StatusPending},
		{ID: 22, UserPhone: "01900000000", Amount: d("1"), Method: "usdt", Wallet: "T...", Date: date, Status: domain.StatusPending},
	}
	doc.Plans = []domain.Plan{
		{ID: 1, Name: "Basic", Price: d("500"), Reward: d("20"), Validity: 30},
		{ID: 3, Name: "Gold", Price: d("1500"), Reward: d("70"), Validity: 60},
	}
	doc.Settings = domain.Settings{Announcement: "welcome", PaymentMethods: map[string]string{"bkash": "017"}}
	return doc
}

func newTestService(t *testing.T) (*Service, *memStore) {
	t.Helper()
	ms := newMemStore(t, seedDocument())
	return NewService(ms), ms
}

func mustLoad(t *testing.T, ms *memStore) *domain.Document {
	t.Helper()
	doc, _, err := ms.Load(context.Background())
	require.NoError(t, err)
	return doc
}

func TestApproveDeposit(t *testing.T) {
	s, ms := newTestService(t)
	ctx := context.Background()

	dep, err := s.ApproveDeposit(ctx, 10)
	require.NoError(t, err)
	require.NotNil(t, dep)
	assert.Equal(t, domain.StatusApproved, dep.Status)

	doc := mustLoad(t, ms)
	user := doc.FindUserByID(1)
	assert.True(t, user.Balance.Equal(d("150.25")))
	assert.True(t, user.TotalDeposit.Equal(d("150.25")))
	assert.Equal(t, domain.StatusApproved, doc.FindDeposit(10).Status)

	t.Run("re-approve is a no-op", func(t *testing.T) {
		_, err := s.ApproveDeposit(ctx, 10)
		assert.ErrorIs(t, err, ErrAlreadyProcessed)
		user := mustLoad(t, ms).FindUserByID(1)
		assert.True(t, user.Balance.Equal(d("150.25")))
	})

	t.Run("reject after approve is a no-op", func(t *testing.T) {
		_, err := s.RejectDeposit(ctx, 10)
		assert.ErrorIs(t, err, ErrAlreadyProcessed)
		assert.Equal(t, domain.StatusApproved, mustLoad(t, ms).FindDeposit(10).Status)
	})
}

func TestApproveDeposit_MissingDeposit(t *testing.T) {
	s, ms := newTestService(t)

	dep, err := s.ApproveDeposit(context.Background(), 999)
	assert.NoError(t, err)
	assert.Nil(t, dep)
	assert.Equal(t, 0, ms.saves)
}

func TestApproveDeposit_MissingUser(t *testing.T) {
	s, ms := newTestService(t)

	_, err := s.ApproveDeposit(context.Background(), 11)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, 0, ms.saves)
	assert.Equal(t, domain.StatusPending, mustLoad(t, ms).FindDeposit(11).Status)
}

func TestRejectDeposit(t *testing.T) {
	s, ms := newTestService(t)

	dep, err := s.RejectDeposit(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, dep.Status)

	doc := mustLoad(t, ms)
	assert.True(t, doc.FindUserByID(1).Balance.Equal(d("100")))
	assert.Equal(t, domain.StatusRejected, doc.FindDeposit(10).Status)

	dep, err = s.RejectDeposit(context.Background(), 999)
	assert.NoError(t, err)
	assert.Nil(t, dep)
}

func TestApproveWithdraw(t *testing.T) {
	tests := []struct {
		name        string
		id          int64
		wantErr     error
		wantStatus  domain.Status
		userID      int64
		wantBalance string
		wantTotal   string
	}{
		{name: "sufficient balance", id: 20, wantStatus: domain.StatusApproved, userID: 1, wantBalance: "60", wantTotal: "40"},
		{name: "insufficient balance is rejected", id: 21, wantErr: ErrInsufficientBalance, wantStatus: domain.StatusRejected, userID: 2, wantBalance: "5", wantTotal: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ms := newTestService(t)

			w, err := s.ApproveWithdraw(context.Background(), tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			require.NotNil(t, w)
			assert.Equal(t, tt.wantStatus, w.Status)

			doc := mustLoad(t, ms)
			assert.Equal(t, tt.wantStatus, doc.FindWithdraw(tt.id).Status)
			user := doc.FindUserByID(tt.userID)
			assert.True(t, user.Balance.Equal(d(tt.wantBalance)), "balance %s", user.Balance)
			assert.True(t, user.TotalWithdraw.Equal(d(tt.wantTotal)), "totalWithdraw %s", user.TotalWithdraw)
		})
	}
}

func TestApproveWithdraw_ExactBalance(t *testing.T) {
	doc := seedDocument()
	doc.Users[0].Balance = d("40")
	s := NewService(newMemStore(t, doc))

	w, err := s.ApproveWithdraw(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, w.Status)
}

func TestApproveWithdraw_MissingRecords(t *testing.T) {
	s, ms := newTestService(t)
	ctx := context.Background()

	w, err := s.ApproveWithdraw(ctx, 999)
	assert.NoError(t, err)
	assert.Nil(t, w)

	_, err = s.ApproveWithdraw(ctx, 22)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, domain.StatusPending, mustLoad(t, ms).FindWithdraw(22).Status)
	assert.Equal(t, 0, ms.saves)
}

func TestRejectWithdraw(t *testing.T) {
	s, ms := newTestService(t)
	ctx := context.Background()

	w, err := s.RejectWithdraw(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, w.Status)
	assert.True(t, mustLoad(t, ms).FindUserByID(1).Balance.Equal(d("100")))

	_, err = s.ApproveWithdraw(ctx, 20)
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	assert.True(t, mustLoad(t, ms).FindUserByID(1).Balance.Equal(d("100")))
}

func TestSaveUser(t *testing.T) {
	s, ms := newTestService(t)
	ctx := context.Background()

	user, err := s.SaveUser(ctx, UserEdit{ID: 2, Name: "Karim Uddin", Phone: "01833333333", Balance: d("77.7"), Plan: "Basic"})
	require.NoError(t, err)
	assert.Equal(t, "Karim Uddin", user.Name)

	stored := mustLoad(t, ms).FindUserByID(2)
	assert.Equal(t, "01833333333", stored.Phone)
	assert.True(t, stored.Balance.Equal(d("77.7")))
	assert.Equal(t, "Basic", stored.Plan)
	assert.True(t, stored.TotalDeposit.Equal(d("5")), "totals are not editable")

	_, err = s.SaveUser(ctx, UserEdit{ID: 404})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	s, ms := newTestService(t)
	ctx := context.Background()

	removed, err := s.DeleteUser(ctx, 1)
	require.NoError(t, err)
	assert.True(t, removed)
	doc := mustLoad(t, ms)
	assert.Len(t, doc.Users, 1)
	assert.Nil(t, doc.FindUserByID(1))

	removed, err = s.DeleteUser(ctx, 1)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestSavePlan(t *testing.T) {
	ctx := context.Background()

	t.Run("new plan gets max id plus one", func(t *testing.T) {
		s, ms := newTestService(t)
		name := "Silver"
		first, err := s.SavePlan(ctx, PlanEdit{Name: &name})
		require.NoError(t, err)
		second, err := s.SavePlan(ctx, PlanEdit{Name: &name})
		require.NoError(t, err)

		assert.Equal(t, int64(4), first.ID)
		assert.Equal(t, int64(5), second.ID)
		assert.Len(t, mustLoad(t, ms).Plans, 4)
	})

	t.Run("first plan gets id 1", func(t *testing.T) {
		s := NewService(newMemStore(t, domain.NewDocument()))
		plan, err := s.SavePlan(ctx, PlanEdit{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), plan.ID)
	})

	t.Run("update merges supplied fields", func(t *testing.T) {
		s, ms := newTestService(t)
		price := d("600")
		validity := 45
		plan, err := s.SavePlan(ctx, PlanEdit{ID: 1, Price: &price, Validity: &validity})
		require.NoError(t, err)
		assert.Equal(t, "Basic", plan.Name)

		stored := mustLoad(t, ms).FindPlan(1)
		assert.True(t, stored.Price.Equal(price))
		assert.True(t, stored.Reward.Equal(d("20")))
		assert.Equal(t, 45, stored.Validity)
	})

	t.Run("update of missing plan", func(t *testing.T) {
		s, _ := newTestService(t)
		_, err := s.SavePlan(ctx, PlanEdit{ID: 99})
		assert.ErrorIs(t, err, ErrPlanNotFound)
	})
}

func TestDeletePlan(t *testing.T) {
	s, ms := newTestService(t)
	ctx := context.Background()

	removed, err := s.DeletePlan(ctx, 1)
	require.NoError(t, err)
	assert.True(t, removed)
	plans := mustLoad(t, ms).Plans
	require.Len(t, plans, 1)
	assert.Equal(t, int64(3), plans[0].ID)
	assert.Equal(t, "Gold", plans[0].Name)

	saves := ms.saves
	removed, err = s.DeletePlan(ctx, 42)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, saves, ms.saves)
}

func TestSettings(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.SaveAnnouncement(ctx, "maintenance tonight"))
	methods := map[string]string{"bkash": "01700000000", "usdt": "TXYZ"}
	require.NoError(t, s.SavePaymentMethods(ctx, methods))
	methods["btc"] = "changed after save"

	settings, err := s.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "maintenance tonight", settings.Announcement)
	assert.Equal(t, map[string]string{"bkash": "01700000000", "usdt": "TXYZ"}, settings.PaymentMethods)
}

func TestStats(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	_, err := s.ApproveDeposit(ctx, 10)
	require.NoError(t, err)
	_, err = s.ApproveWithdraw(ctx, 20)
	require.NoError(t, err)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalUsers)
	assert.True(t, stats.TotalDeposits.Equal(d("50.25")))
	assert.True(t, stats.TotalWithdraws.Equal(d("40")))
	assert.Equal(t, 1, stats.PendingDeposits)
	assert.Equal(t, 2, stats.PendingWithdraws)
	assert.Equal(t, 1, stats.ActivePlans)
}

func TestDepositsView(t *testing.T) {
	doc := domain.NewDocument()
	for i := int64(1); i <= 30; i++ {
		status := domain.StatusApproved
		if i%10 == 0 {
			status = domain.StatusPending
		}
		doc.Deposits = append(doc.Deposits, domain.Deposit{ID: i, Amount: d("1"), Status: status})
	}
	s := NewService(newMemStore(t, doc))

	view, err := s.Deposits(context.Background())
	require.NoError(t, err)
	require.Len(t, view.Pending, 3)
	assert.Equal(t, int64(30), view.Pending[0].ID)
	assert.Equal(t, int64(10), view.Pending[2].ID)
	require.Len(t, view.Completed, CompletedLimit)
	assert.Equal(t, int64(29), view.Completed[0].ID)
}

func TestWithdrawsView(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()
	_, err := s.RejectWithdraw(ctx, 21)
	require.NoError(t, err)

	view, err := s.Withdraws(ctx)
	require.NoError(t, err)
	require.Len(t, view.Pending, 2)
	assert.Equal(t, int64(22), view.Pending[0].ID)
	require.Len(t, view.Completed, 1)
	assert.Equal(t, int64(21), view.Completed[0].ID)
}

func TestExportImportRoundTrip(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	exported, err := s.Export(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(exported), "\n  \"users\": [")

	other := NewService(newMemStore(t, domain.NewDocument()))
	_, err = other.Import(ctx, exported)
	require.NoError(t, err)

	again, err := other.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(exported), string(again))

	before, err := s.Users(ctx)
	require.NoError(t, err)
	imported, err := other.Users(ctx)
	require.NoError(t, err)
	require.Len(t, imported, len(before))
	for i := range before {
		assert.Equal(t, before[i].Name, imported[i].Name)
		assert.True(t, before[i].Balance.Equal(imported[i].Balance))
	}
}

func TestImportRejectsInvalidJSON(t *testing.T) {
	s, ms := newTestService(t)

	_, err := s.Import(context.Background(), []byte("{not json"))
	assert.ErrorIs(t, err, ErrInvalidDocument)
	_, err = s.Import(context.Background(), []byte("  "))
	assert.ErrorIs(t, err, ErrInvalidDocument)
	assert.Equal(t, 0, ms.saves)
}

func TestReset(t *testing.T) {
	s, ms := newTestService(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.Reset(ctx, "delete all"), ErrResetPhrase)
	assert.Len(t, mustLoad(t, ms).Users, 2)

	require.NoError(t, s.Reset(ctx, ResetPhrase))
	doc := mustLoad(t, ms)
	assert.Empty(t, doc.Users)
	assert.Empty(t, doc.Plans)
}

// userAppDocument is a document as the user app stores it, with members the admin does not model
const userAppDocument = `{
  "users": [
    {"id": 1, "name": "Rahim", "phone": "017", "balance": 100, "totalDeposit": 100, "totalWithdraw": 0, "plan": "None",
     "password": "secret", "referralCode": "R1"}
  ],
  "deposits": [
    {"id": 5, "userPhone": "017", "amount": 50, "method": "bkash", "date": "2025-01-02T03:04:05.000Z", "status": "Pending", "screenshot": "s.png"}
  ],
  "withdraws": [
    {"id": 6, "userPhone": "017", "amount": 10, "method": "bkash", "wallet": "017", "date": 1735787045000, "status": "Pending"}
  ],
  "plans": [{"id": 1, "name": "Basic", "price": 500, "reward": 20, "validity": 30, "badge": "new"}],
  "settings": {"announcement": "", "paymentMethods": {}, "supportLink": "t.me/help"},
  "referrals": [{"from": "017", "to": "018"}]
}`

func TestMutationsKeepUserAppMembers(t *testing.T) {
	s := NewService(newMemStore(t, domain.NewDocument()))
	ctx := context.Background()

	_, err := s.Import(ctx, []byte(userAppDocument))
	require.NoError(t, err)
	_, err = s.ApproveDeposit(ctx, 5)
	require.NoError(t, err)
	_, err = s.ApproveWithdraw(ctx, 6)
	require.NoError(t, err)

	exported, err := s.Export(ctx)
	require.NoError(t, err)
	var out struct {
		Users     []map[string]any `json:"users"`
		Deposits  []map[string]any `json:"deposits"`
		Withdraws []map[string]any `json:"withdraws"`
		Plans     []map[string]any `json:"plans"`
		Settings  map[string]any   `json:"settings"`
		Referrals []map[string]any `json:"referrals"`
	}
	require.NoError(t, json.Unmarshal(exported, &out))

	require.Len(t, out.Users, 1)
	assert.Equal(t, "secret", out.Users[0]["password"])
	assert.Equal(t, "R1", out.Users[0]["referralCode"])
	assert.Equal(t, float64(140), out.Users[0]["balance"])
	assert.Equal(t, "Approved", out.Deposits[0]["status"])
	assert.Equal(t, "s.png", out.Deposits[0]["screenshot"])
	assert.Equal(t, "2025-01-02T03:04:05.000Z", out.Deposits[0]["date"])
	assert.Equal(t, float64(1735787045000), out.Withdraws[0]["date"])
	assert.Equal(t, "new", out.Plans[0]["badge"])
	assert.Equal(t, "t.me/help", out.Settings["supportLink"])
	assert.Equal(t, []map[string]any{{"from": "017", "to": "018"}}, out.Referrals)
}

func TestEpochMillisecondDates(t *testing.T) {
	ms := &memStore{data: []byte(`{"users":[{"id":1,"name":"A","phone":"017","balance":5,"totalDeposit":0,"totalWithdraw":0,"plan":"None"}],
		"deposits":[{"id":5,"userPhone":"017","amount":1,"method":"bkash","date":1735787045000,"status":"Pending"}]}`), version: 1}
	s := NewService(ms)
	ctx := context.Background()

	users, err := s.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	dep, err := s.ApproveDeposit(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, dep)
	assert.JSONEq(t, `1735787045000`, string(mustLoad(t, ms).FindDeposit(5).Date))
}
