package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/diskfs/go-mbrtable"
	"github.com/diskfs/go-mbrtable/disk"
	"github.com/diskfs/go-mbrtable/partition/mbr"
	"github.com/diskfs/go-mbrtable/util"
)

func newFlagSet(name, args string) *flag.FlagSet {
	invoked := filepath.Base(os.Args[0])
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Printf("USAGE: %s %s [options] %s\n\n", invoked, name, args)
		fmt.Printf("Options:\n")
		fs.PrintDefaults()
	}
	return fs
}

// deviceArg returns the single positional DEVICE argument
func deviceArg(fs *flag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		fs.Usage()
		return "", fmt.Errorf("%s takes exactly one device or image, got %d", fs.Name(), fs.NArg())
	}
	return fs.Arg(0), nil
}

func openDisk(device string, readOnly bool) (*disk.Disk, error) {
	mode := mbrtable.ReadWriteExclusive
	if readOnly {
		mode = mbrtable.ReadOnly
	}
	return mbrtable.Open(device, mbrtable.WithOpenMode(mode))
}

// stdoutIsTerminal decides the default of the -color flags
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func reread(d *disk.Disk, requested bool) {
	if !requested {
		return
	}
	if err := d.ReReadPartitionTable(); err != nil {
		log.Warnf("%v", err)
	}
}

func show(args []string) error {
	fs := newFlagSet("show", "DEVICE")
	lba := fs.Uint64("lba", Config.LBA, "Sector holding the partition table")
	format := fs.String("format", "text", "Output format: text, json or yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	device, err := deviceArg(fs)
	if err != nil {
		return err
	}

	d, err := openDisk(device, true)
	if err != nil {
		return err
	}
	defer d.Close()

	sector, err := d.ReadSector(*lba)
	if err != nil {
		return err
	}
	table, err := d.ReadTable(*lba)
	if err != nil {
		return err
	}
	signature := mbr.HasSignature(&sector)
	if !signature {
		log.Warnf("sector %d of %s has no MBR boot signature", *lba, device)
	}
	return writeView(os.Stdout, *format, newTableView(device, *lba, signature, table), table)
}

func dump(args []string) error {
	fs := newFlagSet("dump", "DEVICE")
	lba := fs.Uint64("lba", Config.LBA, "Sector to dump")
	tableOnly := fs.Bool("table", false, "Only show the rows of the partition table region")
	color := fs.Bool("color", stdoutIsTerminal(), "Highlight the partition table region")
	if err := fs.Parse(args); err != nil {
		return err
	}
	device, err := deviceArg(fs)
	if err != nil {
		return err
	}

	d, err := openDisk(device, true)
	if err != nil {
		return err
	}
	defer d.Close()

	sector, err := d.ReadSector(*lba)
	if err != nil {
		return err
	}
	fmt.Print(util.DumpByteSlice(sector[:], util.DumpOptions{
		ShowASCII:       true,
		ShowPosHex:      true,
		Highlight:       util.HighlightRange(mbr.TableOffset, mbr.TableOffset+mbr.TableSize),
		OnlyHighlighted: *tableOnly,
		Color:           *color,
	}))
	return nil
}

func apply(args []string) error {
	fs := newFlagSet("apply", "DEVICE")
	lba := fs.Uint64("lba", Config.LBA, "Sector holding the partition table")
	tableFile := fs.String("f", "", "YAML file describing the partition table")
	dryRun := fs.Bool("n", false, "Show the bytes that would change without writing")
	color := fs.Bool("color", stdoutIsTerminal(), "Highlight changed bytes in the -n output")
	rereadFlag := fs.Bool("reread", Config.Reread, "Ask the kernel to re-read the partition table of a block device")
	if err := fs.Parse(args); err != nil {
		return err
	}
	device, err := deviceArg(fs)
	if err != nil {
		return err
	}
	if *tableFile == "" {
		fs.Usage()
		return fmt.Errorf("apply needs a table description, pass -f")
	}

	b, err := os.ReadFile(*tableFile)
	if err != nil {
		return fmt.Errorf("could not read table description %s: %w", *tableFile, err)
	}
	table, err := parseTableSpec(b)
	if err != nil {
		return err
	}
	if err := table.Overlaps(*lba); err != nil {
		return fmt.Errorf("refusing to write table: %w", err)
	}
	d, err := openDisk(device, *dryRun)
	if err != nil {
		return err
	}
	defer d.Close()

	for i, e := range table {
		if !e.IsEmpty() && e.GetStart()+e.GetSize() > d.Size {
			return fmt.Errorf("partition %d ends at byte %d, past the end of %s (%d bytes)", i, e.GetStart()+e.GetSize(), device, d.Size)
		}
	}

	before, err := d.ReadSector(*lba)
	if err != nil {
		return err
	}
	if *dryRun {
		after := before
		region := table.Bytes()
		copy(after[mbr.TableOffset:], region[:])
		different, out := util.DumpByteSlicesWithDiffs(before[:], after[:], util.DumpOptions{ShowPosHex: true, Color: *color})
		if !different {
			log.Infof("partition table of %s is already up to date", device)
			return nil
		}
		fmt.Print(out)
		return nil
	}
	if !mbr.HasSignature(&before) {
		log.Warnf("sector %d of %s has no MBR boot signature; other tools may ignore the table", *lba, device)
	}

	if err := d.WriteTable(*lba, table); err != nil {
		return err
	}
	log.Infof("wrote partition table to %s", device)
	reread(d, *rereadFlag)
	return nil
}

func bootable(args []string) error {
	fs := newFlagSet("bootable", "DEVICE")
	lba := fs.Uint64("lba", Config.LBA, "Sector holding the partition table")
	slot := fs.Int("slot", -1, "Slot (0-3) of the partition to mark bootable")
	rereadFlag := fs.Bool("reread", Config.Reread, "Ask the kernel to re-read the partition table of a block device")
	if err := fs.Parse(args); err != nil {
		return err
	}
	device, err := deviceArg(fs)
	if err != nil {
		return err
	}

	d, err := openDisk(device, false)
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.SetBootable(*lba, *slot); err != nil {
		return err
	}
	log.Infof("partition %d of %s is now bootable", *slot, device)
	reread(d, *rereadFlag)
	return nil
}
