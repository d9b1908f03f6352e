package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finsight/scenario-engine/internal/domain"
	"github.com/finsight/scenario-engine/pkg/money"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the account snapshot in the local database",
}

var accountSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Add or update an account balance",
	Long: `Add or update an account. Liabilities carry negative balances.

Example:
  finsight account set --db finsight.db --id cc-1 --name "Rewards Card" \
    --type credit-card --balance -3240.10`,
	RunE: runAccountSet,
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts and the resulting net worth",
	RunE:  runAccountList,
}

var (
	accountID      string
	accountName    string
	accountType    string
	accountBalance string
)

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.PersistentFlags().StringVar(&scenarioDBPath, "db", "finsight.db", "path to scenario database")
	accountCmd.AddCommand(accountSetCmd, accountListCmd)

	accountSetCmd.Flags().StringVar(&accountID, "id", "", "account id (minted when omitted)")
	accountSetCmd.Flags().StringVar(&accountName, "name", "", "account name (required)")
	accountSetCmd.Flags().StringVar(&accountType, "type", "", "account type (required)")
	accountSetCmd.Flags().StringVar(&accountBalance, "balance", "", "current balance (required)")
	accountSetCmd.MarkFlagRequired("name")
	accountSetCmd.MarkFlagRequired("type")
	accountSetCmd.MarkFlagRequired("balance")
}

func runAccountSet(cmd *cobra.Command, args []string) error {
	typ := domain.AccountType(accountType)
	if !typ.Known() {
		return fmt.Errorf("unknown account type %q", accountType)
	}
	balance, err := decimal.NewFromString(accountBalance)
	if err != nil {
		return fmt.Errorf("bad --balance %q: %w", accountBalance, err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	a := domain.Account{ID: accountID, Name: accountName, Type: typ, Balance: balance}
	if err := st.SaveAccount(context.Background(), a); err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	fmt.Printf("saved account %s (%s)\n", accountName, money.FormatUSD(balance))
	return nil
}

func runAccountList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	accounts, err := st.ListAccounts(context.Background())
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}
	if len(accounts) == 0 {
		fmt.Println("no accounts")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tName\tType\tBalance")
	for _, a := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Type, money.FormatUSD(a.Balance))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nNet worth: %s\n", money.FormatUSD(domain.NetWorth(accounts)))
	return nil
}
