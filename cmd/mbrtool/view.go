package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	units "github.com/docker/go-units"
	"gopkg.in/yaml.v2"

	"github.com/diskfs/go-mbrtable/partition/mbr"
)

type entryView struct {
	Slot       int    `json:"slot" yaml:"slot"`
	Bootable   bool   `json:"bootable" yaml:"bootable"`
	Attributes string `json:"attributes" yaml:"attributes"`
	Type       string `json:"type" yaml:"type"`
	TypeName   string `json:"typeName" yaml:"typeName"`
	StartCHS   string `json:"startCHS" yaml:"startCHS"`
	EndCHS     string `json:"endCHS" yaml:"endCHS"`
	Start      uint32 `json:"start" yaml:"start"`
	Sectors    uint32 `json:"sectors" yaml:"sectors"`
	End        uint64 `json:"end" yaml:"end"`
}

type tableView struct {
	Device     string      `json:"device" yaml:"device"`
	LBA        uint64      `json:"lba" yaml:"lba"`
	Signature  bool        `json:"signature" yaml:"signature"`
	Partitions []entryView `json:"partitions" yaml:"partitions"`
}

func newTableView(device string, lba uint64, signature bool, table mbr.Table) tableView {
	v := tableView{Device: device, LBA: lba, Signature: signature}
	for i, e := range table {
		v.Partitions = append(v.Partitions, entryView{
			Slot:       i,
			Bootable:   e.Bootable(),
			Attributes: fmt.Sprintf("0x%02x", e.Attributes),
			Type:       fmt.Sprintf("0x%02x", byte(e.Type)),
			TypeName:   e.Type.String(),
			StartCHS:   formatCHS(e.StartCHS),
			EndCHS:     formatCHS(e.EndCHS),
			Start:      e.StartLBA,
			Sectors:    e.Sectors,
			End:        e.End(),
		})
	}
	return v
}

func writeView(w io.Writer, format string, v tableView, table mbr.Table) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		b, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	case "text":
		fmt.Fprintf(w, "Disk %s: partition table at sector %d\n\n", v.Device, v.LBA)
		tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
		fmt.Fprintln(tw, "Slot\tBoot\tStart\tEnd\tSectors\tSize\tId\tType")
		for i, e := range table {
			if e.IsEmpty() {
				continue
			}
			boot := ""
			if e.Bootable() {
				boot = "*"
			}
			end := e.End()
			if e.Sectors > 0 {
				end--
			}
			fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%s\t%x\t%s\n", i, boot, e.StartLBA, end, e.Sectors, units.BytesSize(float64(e.GetSize())), byte(e.Type), e.Type)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
