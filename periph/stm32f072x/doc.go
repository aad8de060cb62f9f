// Package stm32f072x maps the CRC calculation unit of the STM32F072x.
//
// The three instances CRC1, CRC2 and CRC3 share the register map Crc.
//
//	stm32f072x.CRC1.Cr.RevIn.Write(stm32f072x.CRC_CR_REV_IN_Word)
//	stm32f072x.CRC1.Dr.Dr.Write(data)
//	sum := stm32f072x.CRC1.Dr.Dr.Read()
package stm32f072x

//go:generate go run ../../cmd/regen -o crc.go ../../device/testdata/stm32f072x_crc.svd CRC1
