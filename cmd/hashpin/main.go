package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/m04kA/SMC-SlotBookingService/internal/infra/session"
)

// Печатает bcrypt-хеш PIN для report.pin_hash / REPORT_PIN_HASH.
// PIN берется из -pin или из первой строки stdin.
func main() {
	pin := flag.String("pin", "", "report PIN to hash (read from stdin if empty)")
	flag.Parse()

	value := *pin
	if value == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintf(os.Stderr, "Failed to read PIN from stdin: %v\n", err)
			os.Exit(1)
		}
		value = strings.TrimSpace(line)
	}

	if value == "" {
		fmt.Fprintln(os.Stderr, "PIN must not be empty")
		os.Exit(1)
	}

	hash, err := session.HashPin(value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash PIN: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}
