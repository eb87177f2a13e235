// Package blaster finds Altera/Intel USB-Blaster download cables, which
// system-console needs to reach the board.
package blaster

import (
	"context"
	"fmt"

	"github.com/google/gousb"
)

// VendorIDAltera is the USB vendor ID of Altera download cables.
const VendorIDAltera = 0x09fb

// CableKind distinguishes cable generations.
type CableKind string

const (
	CableKindBlaster   CableKind = "usb-blaster"
	CableKindBlasterII CableKind = "usb-blaster-ii"
)

// CableInfo describes a detected download cable.
type CableInfo struct {
	Kind        CableKind
	Description string
	VendorID    uint16
	ProductID   uint16
	Bus         int
	Address     int
}

// Label returns a user-friendly description for the cable.
func (c CableInfo) Label() string {
	if c.Description != "" {
		return c.Description
	}
	return fmt.Sprintf("%s (%04X:%04X)", string(c.Kind), c.VendorID, c.ProductID)
}

type knownUSBDevice struct {
	VendorID    uint16
	ProductID   uint16
	Kind        CableKind
	Description string
}

// USB-Blaster II enumerates as 0x6010 until its firmware is loaded.
var knownCables = []knownUSBDevice{
	{VendorID: VendorIDAltera, ProductID: 0x6001, Kind: CableKindBlaster, Description: "USB-Blaster"},
	{VendorID: VendorIDAltera, ProductID: 0x6002, Kind: CableKindBlaster, Description: "USB-Blaster (on-board)"},
	{VendorID: VendorIDAltera, ProductID: 0x6003, Kind: CableKindBlaster, Description: "USB-Blaster (on-board)"},
	{VendorID: VendorIDAltera, ProductID: 0x6010, Kind: CableKindBlasterII, Description: "USB-Blaster II (unconfigured)"},
	{VendorID: VendorIDAltera, ProductID: 0x6810, Kind: CableKindBlasterII, Description: "USB-Blaster II"},
}

// Classify matches a vendor/product pair against the known cables.
func Classify(vendor, product uint16) (CableInfo, bool) {
	for _, known := range knownCables {
		if vendor == known.VendorID && product == known.ProductID {
			return CableInfo{
				Kind:        known.Kind,
				Description: known.Description,
				VendorID:    known.VendorID,
				ProductID:   known.ProductID,
			}, true
		}
	}
	return CableInfo{}, false
}

// Discover enumerates attached download cables. Devices are only inspected
// through their descriptors, never opened.
func Discover(ctx context.Context) ([]CableInfo, error) {
	var results []CableInfo
	usb := gousb.NewContext()
	defer usb.Close()

	_, err := usb.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}

		if info, ok := Classify(uint16(desc.Vendor), uint16(desc.Product)); ok {
			info.Bus = desc.Bus
			info.Address = desc.Address
			results = append(results, info)
		}
		return false
	})
	if err != nil && err != gousb.ErrorAccess {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}

	return results, nil
}
