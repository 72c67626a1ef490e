package backend

// summaryFilters strips individual bit annotations for known protocols
// so summary mode only sees high-level decode output. Decoders without
// an entry run unfiltered.
var summaryFilters = map[string]string{
	"i2c":             "i2c=start:repeat-start:stop:ack:nack:address-read:address-write:data-read:data-write",
	"spi":             "spi=mosi-data:miso-data:mosi-transfer:miso-transfer",
	"uart":            "uart=rx-data:tx-data",
	"can":             "can=sof:eof:id:ext-id:full-id:ide:rtr:dlc:data:warnings",
	"onewire_network": "onewire_network",
	"mdio":            "mdio=decode",
	"usb_packet":      "usb_packet",
	"dcf77":           "dcf77=minute:hour:day:day-of-week:month:year",
	"am230x":          "am230x=humidity:temperature:checksum",
	"avr_isp":         "avr_isp",
	"spiflash":        "spiflash",
	"sdcard_sd":       "sdcard_sd=cmd0:cmd2:cmd3:cmd6:cmd7:cmd8:cmd9:cmd10:cmd11:cmd12:cmd13:cmd16:cmd17:cmd18:cmd23:cmd24:cmd25:cmd41:cmd55:decoded-fields",
}

// SummaryFilter returns the default annotation filter for summary-mode
// decoding of the given decoder, or "" when none is registered.
func SummaryFilter(decoder string) string {
	return summaryFilters[decoder]
}
