package importer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/importer"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/ledger"
)

var testMapping = importer.MappingConfig{
	importer.FieldDate:   importer.Direct{Column: "Datum"},
	importer.FieldAmount: importer.Direct{Column: "Bedrag"},
	importer.FieldPayee:  importer.Direct{Column: "Naam"},
}

var testLedger = ledger.Config{ServerURL: "http://ledger", Credential: "secret", BudgetID: "budget"}

func groupedRows() []importer.Row {
	return []importer.Row{
		{"Datum": "2024-01-01", "Bedrag": "-10,00", "Naam": "Albert Heijn", "Rekening": "A"},
		{"Datum": "2024-01-02", "Bedrag": "n/a", "Naam": "Broken", "Rekening": "A"},
		{"Datum": "2024-01-03", "Bedrag": "1.250,00", "Naam": "Salary", "Rekening": "B"},
		{"Datum": "", "Bedrag": "5,00", "Naam": "No date", "Rekening": "C"},
		{"Datum": "2024-01-04", "Bedrag": "7,25", "Naam": "Refund", "Rekening": "C"},
	}
}

func TestService_Import_EndToEndDryRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	connector := ledger.NewMockConnector(ctrl)

	svc := importer.NewService(connector)
	got, err := svc.Import(context.Background(), importer.Request{
		Rows:    []importer.Row{{"Datum": "01-01-2024", "Bedrag": "12,50", "Naam": "X"}},
		Mapping: testMapping,
		DryRun:  true,
	})
	require.NoError(t, err)

	assert.True(t, got.DryRun)
	assert.Equal(t, 1, got.TotalTransactions)
	assert.Equal(t, 0, got.TotalInvalid)
	require.Len(t, got.Groups, 1)
	assert.Equal(t, importer.GroupSingle, got.Groups[0].Group)
	assert.Equal(t, 1, got.Groups[0].TransactionCount)
	assert.Equal(t, 0, got.Groups[0].InvalidCount)
	require.Len(t, got.Groups[0].Preview, 1)
	assert.Equal(t, "X", got.Groups[0].Preview[0].Payee)
}

func TestService_Import_DryRunNeverContactsLedger(t *testing.T) {
	ctrl := gomock.NewController(t)
	// No expectations: any call fails the test.
	connector := ledger.NewMockConnector(ctrl)

	svc := importer.NewService(connector)
	got, err := svc.Import(context.Background(), importer.Request{
		Rows:           groupedRows(),
		Mapping:        testMapping,
		GroupByColumn:  "Rekening",
		AccountMapping: map[string]string{"A": "acc-a"},
		DryRun:         true,
	})
	require.NoError(t, err)

	require.Len(t, got.Groups, 3)
	assert.Equal(t, "acc-a", got.Groups[0].AccountID)
	assert.Empty(t, got.Groups[1].AccountID)
	assert.Equal(t, 5, got.TotalTransactions)
	assert.Equal(t, 2, got.TotalInvalid)
	assert.Equal(t, 1, got.Groups[0].InvalidCount)
	assert.Equal(t, 0, got.Groups[1].InvalidCount)
	assert.Equal(t, 1, got.Groups[2].InvalidCount)
}

func TestService_Import_PreviewIsBounded(t *testing.T) {
	rows := make([]importer.Row, 0, 12)
	for range 12 {
		rows = append(rows, importer.Row{"Datum": "2024-01-01", "Bedrag": "1,00"})
	}

	svc := importer.NewService(nil)
	got, err := svc.Import(context.Background(), importer.Request{Rows: rows, Mapping: testMapping, DryRun: true})
	require.NoError(t, err)

	require.Len(t, got.Groups, 1)
	assert.Equal(t, 12, got.Groups[0].TransactionCount)
	assert.Len(t, got.Groups[0].Preview, importer.PreviewSize)
}

func TestService_Import_Live(t *testing.T) {
	type testCase struct {
		name      string
		accounts  map[string]string
		ledger    ledger.Config
		setupMock func(conn *ledger.MockConnector, client *ledger.MockClient)
		verify    func(t *testing.T, got *importer.Result)
		wantErr   func(t *testing.T, err error)
	}

	tests := []testCase{
		{
			name:     "All groups imported in order",
			accounts: map[string]string{"A": "acc-a", "B": "acc-b", "C": "acc-c"},
			setupMock: func(conn *ledger.MockConnector, client *ledger.MockClient) {
				conn.EXPECT().Connect(testLedger).Return(client, nil).Times(1)
				gomock.InOrder(
					client.EXPECT().
						ImportTransactions(gomock.Any(), "acc-a", gomock.Any()).
						DoAndReturn(func(_ context.Context, _ string, txs []ledger.Transaction) error {
							require.Len(t, txs, 1)
							assert.Equal(t, "Albert Heijn", txs[0].Payee)
							assert.True(t, decimal.RequireFromString("-10").Equal(txs[0].Amount))

							return nil
						}),
					client.EXPECT().ImportTransactions(gomock.Any(), "acc-b", gomock.Len(1)).Return(nil),
					client.EXPECT().
						ImportTransactions(gomock.Any(), "acc-c", gomock.Any()).
						DoAndReturn(func(_ context.Context, _ string, txs []ledger.Transaction) error {
							require.Len(t, txs, 1)
							assert.Equal(t, "Refund", txs[0].Payee)

							return nil
						}),
				)
			},
			verify: func(t *testing.T, got *importer.Result) {
				assert.False(t, got.DryRun)
				require.Len(t, got.Groups, 3)
				assert.Equal(t, 5, got.TotalTransactions)
				assert.Equal(t, 2, got.TotalInvalid)
			},
		},
		{
			name:     "Second group fails and third is never attempted",
			accounts: map[string]string{"A": "acc-a", "B": "acc-b", "C": "acc-c"},
			setupMock: func(conn *ledger.MockConnector, client *ledger.MockClient) {
				conn.EXPECT().Connect(testLedger).Return(client, nil)
				gomock.InOrder(
					client.EXPECT().ImportTransactions(gomock.Any(), "acc-a", gomock.Any()).Return(nil),
					client.EXPECT().
						ImportTransactions(gomock.Any(), "acc-b", gomock.Any()).
						Return(&ledger.RejectedError{Detail: "account closed"}),
				)
			},
			wantErr: func(t *testing.T, err error) {
				var rejected *ledger.RejectedError
				require.ErrorAs(t, err, &rejected)
				assert.Equal(t, "account closed", rejected.Detail)
			},
		},
		{
			name:     "Unavailable ledger aborts",
			accounts: map[string]string{"A": "acc-a", "B": "acc-b", "C": "acc-c"},
			setupMock: func(conn *ledger.MockConnector, client *ledger.MockClient) {
				conn.EXPECT().Connect(testLedger).Return(client, nil)
				client.EXPECT().
					ImportTransactions(gomock.Any(), "acc-a", gomock.Any()).
					Return(ledger.ErrUnavailable)
			},
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ledger.ErrUnavailable)
			},
		},
		{
			name:     "Missing account aborts after earlier groups",
			accounts: map[string]string{"A": "acc-a", "C": "acc-c"},
			setupMock: func(conn *ledger.MockConnector, client *ledger.MockClient) {
				conn.EXPECT().Connect(testLedger).Return(client, nil)
				client.EXPECT().ImportTransactions(gomock.Any(), "acc-a", gomock.Any()).Return(nil)
			},
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, importer.ErrConfiguration)
				assert.Contains(t, err.Error(), `"B"`)
			},
		},
		{
			name:     "Missing account on first group never connects",
			accounts: map[string]string{},
			setupMock: func(_ *ledger.MockConnector, _ *ledger.MockClient) {
			},
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, importer.ErrConfiguration)
			},
		},
		{
			name:     "Incomplete ledger config is a configuration error",
			accounts: map[string]string{"A": "acc-a"},
			setupMock: func(conn *ledger.MockConnector, _ *ledger.MockClient) {
				conn.EXPECT().Connect(testLedger).Return(nil, ledger.ErrIncompleteConfig)
			},
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, importer.ErrConfiguration)
				assert.ErrorIs(t, err, ledger.ErrIncompleteConfig)
			},
		},
		{
			name:     "Missing budget is caught before connecting",
			accounts: map[string]string{"A": "acc-a"},
			ledger:   ledger.Config{ServerURL: "http://ledger"},
			setupMock: func(_ *ledger.MockConnector, _ *ledger.MockClient) {
			},
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, importer.ErrConfiguration)
				assert.Contains(t, err.Error(), "budget id")
			},
		},
		{
			name:     "Connect failure is propagated",
			accounts: map[string]string{"A": "acc-a"},
			setupMock: func(conn *ledger.MockConnector, _ *ledger.MockClient) {
				conn.EXPECT().Connect(testLedger).Return(nil, errors.New("boom"))
			},
			wantErr: func(t *testing.T, err error) {
				assert.NotErrorIs(t, err, importer.ErrConfiguration)
				assert.Contains(t, err.Error(), "boom")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			conn := ledger.NewMockConnector(ctrl)
			client := ledger.NewMockClient(ctrl)
			tt.setupMock(conn, client)

			cfg := testLedger
			if tt.ledger != (ledger.Config{}) {
				cfg = tt.ledger
			}

			svc := importer.NewService(conn)
			got, err := svc.Import(context.Background(), importer.Request{
				Rows:           groupedRows(),
				Mapping:        testMapping,
				GroupByColumn:  "Rekening",
				AccountMapping: tt.accounts,
				Ledger:         cfg,
			})

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)
				tt.wantErr(t, err)

				return
			}

			require.NoError(t, err)
			tt.verify(t, got)
		})
	}
}

func TestService_Import_EmptyBatchStillPosted(t *testing.T) {
	ctrl := gomock.NewController(t)

	conn := ledger.NewMockConnector(ctrl)
	client := ledger.NewMockClient(ctrl)

	conn.EXPECT().Connect(testLedger).Return(client, nil)
	client.EXPECT().
		ImportTransactions(gomock.Any(), "acc", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, txs []ledger.Transaction) error {
			assert.NotNil(t, txs)
			assert.Empty(t, txs)

			return nil
		})

	svc := importer.NewService(conn)
	got, err := svc.Import(context.Background(), importer.Request{
		Rows:           []importer.Row{{"Datum": "", "Bedrag": "x"}},
		Mapping:        testMapping,
		AccountMapping: map[string]string{importer.GroupSingle: "acc"},
		Ledger:         testLedger,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, got.TotalInvalid)
}
