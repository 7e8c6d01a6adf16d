// mikey_uart_test.go

package main

import "testing"

func TestUartLoopbackRoundTripsAByte(t *testing.T) {
	u := NewMikeyUART()
	u.Reset()
	u.s.Loopback = true
	u.WriteData(0xA5)
	for i := 0; i < uartTxShiftBits; i++ {
		u.BitClock()
	}
	if !u.s.RxReady {
		t.Fatalf("loopback must mark a byte received after 8 bit clocks")
	}
	if got := u.ReadData(); got != 0xA5 {
		t.Fatalf("loopback round trip = %#x, want 0xA5", got)
	}
}

func TestUartTxReadyIsLevelSensitive(t *testing.T) {
	u := NewMikeyUART()
	u.Reset()
	if !u.TxReady() {
		t.Fatalf("an idle UART must report TxReady")
	}
	u.WriteData(0xFF)
	if u.TxReady() {
		t.Fatalf("TxReady must go false the instant a transmit starts")
	}
}

func TestUartOverrunFlaggedOnUnreadByte(t *testing.T) {
	u := NewMikeyUART()
	u.Reset()
	u.s.Loopback = true
	u.WriteData(0x11)
	for i := 0; i < uartTxShiftBits; i++ {
		u.BitClock()
	}
	u.WriteData(0x22)
	for i := 0; i < uartTxShiftBits; i++ {
		u.BitClock()
	}
	if !u.s.Overrun {
		t.Fatalf("receiving a second byte before the first is read must set Overrun")
	}
}

func TestUartReadDataClearsRxReady(t *testing.T) {
	u := NewMikeyUART()
	u.Reset()
	u.s.Loopback = true
	u.WriteData(0x7E)
	for i := 0; i < uartTxShiftBits; i++ {
		u.BitClock()
	}
	u.ReadData()
	if u.s.RxReady {
		t.Fatalf("reading RxData must clear RxReady")
	}
}
