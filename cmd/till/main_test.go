package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/cash-drawer-planner/internal/cashier"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/events"
	interfaces "github.com/sheikh-saqib/cash-drawer-planner/internal/interfaces"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/models"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/storage/file"
	"github.com/sheikh-saqib/cash-drawer-planner/internal/till"
)

func newTestCashier(t *testing.T) *cashier.Cashier {
	t.Helper()
	store := file.NewFileRecordStore(filepath.Join(t.TempDir(), "records.json"))
	planner := till.NewPlanner(models.DefaultCatalog(), till.DefaultReserve)
	return cashier.NewCashier(planner, store, events.NopPublisher{})
}

func runCmd(t *testing.T, c *cashier.Cashier, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), c, args, &out)
	return out.String(), err
}

var drawerArgs = []string{
	"-count", "bills100=2",
	"-count", "bills20=3",
	"-count", "bills5=4",
	"-count", "quarters=20",
}

func TestRun_Total(t *testing.T) {
	out, err := runCmd(t, newTestCashier(t), append([]string{"total"}, drawerArgs...)...)
	require.NoError(t, err)
	assert.Equal(t, "Drawer total: $285.00\n", out)
}

func TestRun_Withdraw(t *testing.T) {
	out, err := runCmd(t, newTestCashier(t), append([]string{"withdraw", "-sales", "85"}, drawerArgs...)...)
	require.NoError(t, err)
	assert.Equal(t, "Withdraw $85.00 from a drawer of $285.00, leaving $200.00\n"+
		"  Take 3 × $20 bills ($60.00)\n"+
		"  Take 4 × $5 bills ($20.00)\n"+
		"  Take 20 quarters ($5.00)\n", out)
}

func TestRun_WithdrawFailure(t *testing.T) {
	_, err := runCmd(t, newTestCashier(t), append([]string{"withdraw", "-sales", "90"}, drawerArgs...)...)
	assert.ErrorIs(t, err, till.ErrExceedsAvailable)
	assert.EqualError(t, err, "Error: Cannot withdraw $90.00. Maximum available: $85.00")
}

func TestRun_BadCountFlag(t *testing.T) {
	_, err := runCmd(t, newTestCashier(t), "total", "-count", "bills20")
	assert.ErrorContains(t, err, "expected key=count")
}

func TestRun_SaveListDelete(t *testing.T) {
	c := newTestCashier(t)
	ctx := context.Background()

	out, err := runCmd(t, c, append([]string{"save", "-drawer", "3", "-sales", "12.5"}, drawerArgs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "for drawer 3: total $285.00, sales $12.50")

	records, err := c.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	id := records[0].ID

	out, err = runCmd(t, c, "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "$285.00")

	_, err = runCmd(t, c, "delete", "-id", strconv.FormatInt(id, 10))
	assert.ErrorContains(t, err, "pass -yes to confirm")

	out, err = runCmd(t, c, "delete", "-id", strconv.FormatInt(id, 10), "-yes")
	require.NoError(t, err)
	assert.Equal(t, "Deleted record "+strconv.FormatInt(id, 10)+"\n", out)

	_, err = runCmd(t, c, "delete", "-id", strconv.FormatInt(id, 10), "-yes")
	assert.ErrorIs(t, err, interfaces.ErrRecordNotFound)

	out, err = runCmd(t, c, "list")
	require.NoError(t, err)
	assert.Equal(t, "No saved records.\n", out)
}

func TestRun_SaveWithoutDrawerNumber(t *testing.T) {
	_, err := runCmd(t, newTestCashier(t), append([]string{"save"}, drawerArgs...)...)
	assert.EqualError(t, err, "Please enter a drawer number.")
}

func TestRun_UnknownCommand(t *testing.T) {
	out, err := runCmd(t, newTestCashier(t), "count")
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, out, "Unknown command: count")
}
