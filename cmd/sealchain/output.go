package main

import (
	"fmt"
	"sort"

	"github.com/pterm/pterm"

	"sealchain/blockchain"
)

func sortedParticipants(l *blockchain.Ledger) []string {
	persons := make([]string, 0)
	for _, p := range l.Participants().ToSlice() {
		persons = append(persons, p.(string))
	}
	sort.Strings(persons)
	return persons
}

func printValidity(title string, valid bool) {
	if valid {
		pterm.Success.Println(title + ": chain is valid")
	} else {
		pterm.Error.Println(title + ": chain is NOT valid")
	}
}

func printBalances(rows []balanceRow) error {
	data := pterm.TableData{{"Identity", "Balance"}}
	for _, r := range rows {
		data = append(data, []string{r.Identity, r.Balance.String()})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printReport(r *demoReport) error {
	pterm.DefaultSection.Println("Sealed ledger")
	printValidity("Sealed ledger", r.Valid)
	if err := printBalances(r.Balances); err != nil {
		return err
	}

	pterm.DefaultSection.Println("Reloaded ledger")
	printValidity("Reloaded ledger", r.LoadedValid)
	if err := printBalances(r.LoadedBalances); err != nil {
		return err
	}

	pterm.DefaultSection.Println("Queries")
	pterm.Info.Printfln("Participants: %v", r.Participants)
	pterm.Info.Printfln("Balance extrema of %s: min %s, max %s", r.ExtremaOf, r.Min, r.Max)
	pterm.Info.Printfln("Expected work behind the chain: %s seals", r.TotalWork)

	pterm.DefaultSection.Println("Merkle roots")
	data := pterm.TableData{{"Block", "Merkle root"}}
	for _, b := range r.BlockRoots {
		root := b.Root
		if root == "" {
			root = "no transfers"
		}
		data = append(data, []string{fmt.Sprint(b.Height), root})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}
	pterm.Info.Printfln("Merkle root for entire chain: %s", r.ChainRoot)
	return nil
}
