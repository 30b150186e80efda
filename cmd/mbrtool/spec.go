package main

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/diskfs/go-mbrtable/partition/mbr"
)

// tableSpec is the YAML description of a partition table consumed by apply
type tableSpec struct {
	Partitions []entrySpec `yaml:"partitions"`
}

type entrySpec struct {
	// Slot defaults to the position in the list
	Slot     *int   `yaml:"slot,omitempty"`
	Bootable bool   `yaml:"bootable,omitempty"`
	Type     string `yaml:"type"`
	Start    uint32 `yaml:"start"`
	Sectors  uint32 `yaml:"sectors"`
	StartCHS string `yaml:"startCHS,omitempty"`
	EndCHS   string `yaml:"endCHS,omitempty"`
}

var typeAliases = map[string]mbr.Type{
	"empty":    mbr.Empty,
	"fat12":    mbr.Fat12,
	"fat16":    mbr.Fat16b,
	"fat32":    mbr.Fat32LBA,
	"ntfs":     mbr.NTFS,
	"extended": mbr.ExtendedLBA,
	"swap":     mbr.LinuxSwap,
	"linux":    mbr.Linux,
	"lvm":      mbr.LinuxLVM,
	"raid":     mbr.LinuxRAID,
	"efi":      mbr.EFISystem,
	"gpt":      mbr.GPTProtective,
}

// parseType accepts an alias such as "linux" or a hex code such as "0x83" or "83"
func parseType(s string) (mbr.Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if t, ok := typeAliases[s]; ok {
		return t, nil
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 8)
	if err != nil {
		return 0, fmt.Errorf("unknown partition type %q", s)
	}
	return mbr.Type(v), nil
}

// parseCHS accepts the three on-disk bytes in hex, e.g. "20 21 00"
func parseCHS(s string) (mbr.CHS, error) {
	var c mbr.CHS
	if s == "" {
		return c, nil
	}
	fields := strings.Fields(s)
	if len(fields) != len(c) {
		return c, fmt.Errorf("CHS address %q must be 3 hex bytes", s)
	}
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 16, 8)
		if err != nil {
			return c, fmt.Errorf("CHS address %q: %w", s, err)
		}
		c[i] = byte(v)
	}
	return c, nil
}

func formatCHS(c mbr.CHS) string {
	return fmt.Sprintf("%02x %02x %02x", c[0], c[1], c[2])
}

// parseTableSpec converts a YAML table description into a table. Slots not
// described are left empty.
func parseTableSpec(b []byte) (mbr.Table, error) {
	var (
		spec  tableSpec
		table mbr.Table
	)
	if err := yaml.UnmarshalStrict(b, &spec); err != nil {
		return table, fmt.Errorf("invalid table description: %w", err)
	}
	if len(spec.Partitions) > mbr.EntryCount {
		return table, fmt.Errorf("table describes %d partitions, an MBR holds at most %d", len(spec.Partitions), mbr.EntryCount)
	}
	used := map[int]bool{}
	for i, p := range spec.Partitions {
		slot := i
		if p.Slot != nil {
			slot = *p.Slot
		}
		if slot < 0 || slot >= mbr.EntryCount {
			return table, fmt.Errorf("partition %d: slot %d is not between 0 and %d", i, slot, mbr.EntryCount-1)
		}
		if used[slot] {
			return table, fmt.Errorf("partition %d: slot %d described twice", i, slot)
		}
		used[slot] = true

		typ, err := parseType(p.Type)
		if err != nil {
			return table, fmt.Errorf("partition %d: %w", i, err)
		}
		startCHS, err := parseCHS(p.StartCHS)
		if err != nil {
			return table, fmt.Errorf("partition %d: %w", i, err)
		}
		endCHS, err := parseCHS(p.EndCHS)
		if err != nil {
			return table, fmt.Errorf("partition %d: %w", i, err)
		}
		e := mbr.Entry{
			StartCHS: startCHS,
			Type:     typ,
			EndCHS:   endCHS,
			StartLBA: p.Start,
			Sectors:  p.Sectors,
		}
		e.SetBootable(p.Bootable)
		table[slot] = e
	}
	return table, nil
}
