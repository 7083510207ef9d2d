package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"sbsgauge/internal/battery"
	"sbsgauge/internal/decode"
	"sbsgauge/internal/registers"
)

const noData = "(no data)"

func renderSnapshot(w io.Writer, tbl *registers.Table, snap battery.Snapshot) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("Battery 0x%02X (%s)", snap.Address, snap.Protocol))
	t.AppendHeader(table.Row{"Cmd", "Register", "Value"})

	for _, reg := range tbl.Registers() {
		t.AppendRow(table.Row{fmt.Sprintf("0x%02X", reg.Addr), reg.Name, registerValue(reg, snap)})
	}

	t.AppendSeparator()
	for _, row := range derivedRows(snap) {
		t.AppendRow(row)
	}
	t.Render()
}

func registerValue(reg registers.Register, snap battery.Snapshot) string {
	if s, ok := snap.Strings[reg.Name]; ok {
		return fmt.Sprintf("%q", s)
	}
	if d, ok := snap.Data[reg.Name]; ok {
		return hex.EncodeToString(d)
	}
	if v, ok := snap.Words[reg.Name]; ok {
		return fmt.Sprintf("%d (0x%04X)", v, v)
	}
	return noData
}

func derivedRows(snap battery.Snapshot) []table.Row {
	var rows []table.Row
	add := func(name, value string) {
		rows = append(rows, table.Row{"", name, value})
	}

	if snap.Temperature != nil {
		add("temperature_c", decode.Tenths(snap.Temperature.CelsiusTenths))
		add("temperature_f", decode.Tenths(snap.Temperature.FahrenheitTenths))
	}
	if snap.Status != nil {
		add("status_ok", fmt.Sprint(*snap.StatusOK))
		add("is_charging", fmt.Sprint(*snap.Charging))
		add("is_fully_charged", fmt.Sprint(*snap.FullyCharged))
		add("status_error_code", snap.Status.ErrorCode.String())
	}
	if snap.Mode != nil {
		add("capacity_mode", snap.CapacityUnit)
		add("rate_unit", decode.RateUnit(*snap.Mode))
		add("charger_mode", fmt.Sprint(snap.Mode.ChargerMode))
		add("alarm_mode", fmt.Sprint(snap.Mode.AlarmMode))
		add("condition_flag", fmt.Sprint(snap.Mode.ConditionFlag))
	}
	if snap.Manufactured != nil {
		add("manufacture_date", snap.Manufactured.String())
		add("manufacture_year", fmt.Sprint(snap.Manufactured.Year))
	}
	if v, ok := snap.Words[registers.Current]; ok {
		add("current", decode.Current(v).String())
	}
	return rows
}
