package account

import (
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccountNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{10}$`)
	year := strconv.Itoa(time.Now().Year())

	for i := 0; i < 100; i++ {
		number := GenerateAccountNumber()
		assert.Regexp(t, pattern, number)
		assert.True(t, len(number) >= 4 && number[:4] == year, "number %s should start with current year", number)

		suffix, err := strconv.Atoi(number[4:])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, suffix, 100000)
		assert.LessOrEqual(t, suffix, 999999)
	}
}
