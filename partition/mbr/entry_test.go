package mbr_test

import (
	"crypto/rand"
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/diskfs/go-mbrtable/partition/mbr"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		raw      [mbr.EntrySize]byte
		expected mbr.Entry
	}{
		{
			"bootable linux",
			[mbr.EntrySize]byte{0x80, 0x20, 0x21, 0x00, 0x83, 0x31, 0x18, 0x0d, 0x00, 0x08, 0x00, 0x00, 0x00, 0x20, 0x03, 0x00},
			mbr.Entry{Attributes: 0x80, StartCHS: mbr.CHS{0x20, 0x21, 0x00}, Type: mbr.Linux, EndCHS: mbr.CHS{0x31, 0x18, 0x0d}, StartLBA: 2048, Sectors: 204800},
		},
		{
			"empty",
			[mbr.EntrySize]byte{},
			mbr.Entry{},
		},
		{
			"unknown attributes and type",
			[mbr.EntrySize]byte{0x67, 0xff, 0xff, 0xff, 0x99, 0xfe, 0xfe, 0xfe, 0xff, 0xff, 0xff, 0xff, 0x01, 0x00, 0x00, 0x80},
			mbr.Entry{Attributes: 0x67, StartCHS: mbr.CHS{0xff, 0xff, 0xff}, Type: mbr.Type(0x99), EndCHS: mbr.CHS{0xfe, 0xfe, 0xfe}, StartLBA: 0xffffffff, Sectors: 0x80000001},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := tt.raw
			e := mbr.Decode(raw)
			if diff := cmp.Diff(tt.expected, e); diff != "" {
				t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeBootable(t *testing.T) {
	tests := []struct {
		attrs    byte
		bootable bool
	}{
		{0x80, true},
		{0x00, false},
		{0x81, true},
		{0x7f, false},
	}
	for _, tt := range tests {
		raw := [mbr.EntrySize]byte{tt.attrs}
		if e := mbr.Decode(raw); e.Bootable() != tt.bootable {
			t.Errorf("attributes %#x: bootable was %v instead of %v", tt.attrs, e.Bootable(), tt.bootable)
		}
	}
}

func TestDecodeZeroValue(t *testing.T) {
	var raw [mbr.EntrySize]byte
	if e := mbr.Decode(raw); !e.IsEmpty() {
		t.Errorf("zero bytes decoded to %v instead of an empty entry", e)
	}
	var region [mbr.TableSize]byte
	table := mbr.TableFromBytes(region)
	if !table.Equal(&mbr.Table{}) {
		t.Errorf("zero region decoded to %v instead of an empty table", table)
	}
	// decoding copies, later changes to the source are not seen
	raw[4] = byte(mbr.Linux)
	region[4] = byte(mbr.Linux)
	if table[0].Type != mbr.Empty {
		t.Errorf("decoded table changed with its source: %v", table[0])
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Run("bytes", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			var raw [mbr.EntrySize]byte
			_, _ = rand.Read(raw[:])
			e := mbr.Decode(raw)
			if out := e.Encode(); out != raw {
				t.Fatalf("Encode(Decode(%v)) returned %v", raw, out)
			}
		}
	})
	t.Run("entries", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			var r [16]byte
			_, _ = rand.Read(r[:])
			e := mbr.Entry{
				Attributes: r[0],
				StartCHS:   mbr.CHS{r[1], r[2], r[3]},
				Type:       mbr.Type(r[4]),
				EndCHS:     mbr.CHS{r[5], r[6], r[7]},
				StartLBA:   binary.BigEndian.Uint32(r[8:12]),
				Sectors:    binary.BigEndian.Uint32(r[12:16]),
			}
			raw := e.Encode()
			if out := mbr.Decode(raw); !out.Equal(e) {
				t.Fatalf("Decode(Encode(%v)) returned %v", e, out)
			}
		}
	})
}

func TestEncodeLittleEndian(t *testing.T) {
	e := mbr.Entry{StartLBA: 0x01020304, Sectors: 0x0a0b0c0d}
	b := e.Encode()
	expected := [mbr.EntrySize]byte{8: 0x04, 9: 0x03, 10: 0x02, 11: 0x01, 12: 0x0d, 13: 0x0c, 14: 0x0b, 15: 0x0a}
	if b != expected {
		t.Errorf("returned bytes %v instead of expected %v", b, expected)
	}
}

func TestCHS(t *testing.T) {
	c := mbr.CHS{0x20, 0x21, 0x03}
	if v := c.Uint32(); v != 0x00032120 {
		t.Errorf("Uint32() returned %#x instead of 0x00032120", v)
	}
	if back := mbr.CHSFromUint32(c.Uint32()); back != c {
		t.Errorf("CHSFromUint32 returned %v instead of %v", back, c)
	}
	// the top byte never survives
	if back := mbr.CHSFromUint32(0xff032120); back.Uint32()>>24 != 0 {
		t.Errorf("top byte was kept: %#x", back.Uint32())
	}
}

func TestSetBootable(t *testing.T) {
	e := mbr.Entry{Attributes: 0x05}
	e.SetBootable(true)
	if e.Attributes != 0x85 {
		t.Errorf("attributes %#x instead of 0x85", e.Attributes)
	}
	e.SetBootable(false)
	if e.Attributes != 0x05 {
		t.Errorf("attributes %#x instead of 0x05", e.Attributes)
	}
}

func TestEntryExtent(t *testing.T) {
	e := mbr.Entry{Type: mbr.Linux, StartLBA: 2048, Sectors: 204800}
	if e.IsEmpty() {
		t.Error("entry should not be empty")
	}
	if start := e.GetStart(); start != 2048*512 {
		t.Errorf("received start %d instead of %d", start, 2048*512)
	}
	if size := e.GetSize(); size != 204800*512 {
		t.Errorf("received size %d instead of %d", size, 204800*512)
	}
	if end := e.End(); end != 206848 {
		t.Errorf("received end %d instead of %d", end, 206848)
	}
	big := mbr.Entry{Type: mbr.Linux, StartLBA: 0xffffffff, Sectors: 0xffffffff}
	if end := big.End(); end != 0x1fffffffe {
		t.Errorf("End() overflowed: %#x", end)
	}
	if !(mbr.Entry{}).IsEmpty() {
		t.Error("zero entry should be empty")
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ      mbr.Type
		expected string
	}{
		{mbr.Linux, "Linux"},
		{mbr.EFISystem, "EFI (FAT-12/16/32)"},
		{mbr.Type(0x99), "0x99"},
	}
	for _, tt := range tests {
		if s := tt.typ.String(); s != tt.expected {
			t.Errorf("String() returned %q instead of %q", s, tt.expected)
		}
	}
}
