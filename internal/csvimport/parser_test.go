package csvimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestParse_CompositeSchema(t *testing.T) {
	text := "car_ID,CarName,fueltype,horsepower,citympg\n" +
		"1,alfa-romero giulia,gas,111,21\n" +
		"2,audi 100 ls,gas,102,24\n"

	res := Parse(text)

	assert.Equal(t, []string{"car_ID", "CarName", "fueltype", "horsepower", "citympg"}, res.Header)
	require.Len(t, res.Rows, 2)
	assert.Empty(t, res.Warnings)

	first := res.Rows[0]
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, float64(1), first.Fields["car_ID"])
	assert.Equal(t, "alfa-romero giulia", first.Fields["CarName"])
	assert.Equal(t, "gas", first.Fields["fueltype"])
	assert.Equal(t, float64(111), first.Fields["horsepower"])

	assert.Equal(t, "audi 100 ls", res.Rows[1].Fields["CarName"])
}

func TestParse_NumericCoercion(t *testing.T) {
	text := "car_ID,wheelbase,horsepower\n7,123.5,abc\n"

	res := Parse(text)

	require.Len(t, res.Rows, 1)
	assert.Equal(t, 123.5, res.Rows[0].Fields["wheelbase"])
	assert.Equal(t, float64(0), res.Rows[0].Fields["horsepower"])

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, 2, res.Warnings[0].Line)
	assert.Equal(t, "horsepower", res.Warnings[0].Column)
	assert.Equal(t, "abc", res.Warnings[0].Value)
}

func TestParse_NonFiniteBecomesZero(t *testing.T) {
	res := Parse("car_ID,stroke,peakrpm\n1,NaN,Inf\n")

	require.Len(t, res.Rows, 1)
	assert.Equal(t, float64(0), res.Rows[0].Fields["stroke"])
	assert.Equal(t, float64(0), res.Rows[0].Fields["peakrpm"])
	assert.Len(t, res.Warnings, 2)
}

func TestParse_TrimsFieldsAndCRLF(t *testing.T) {
	res := Parse(" car_ID , CarName \r\n 3 ,  bmw 320i \r\n")

	require.Len(t, res.Rows, 1)
	assert.Equal(t, float64(3), res.Rows[0].Fields["car_ID"])
	assert.Equal(t, "bmw 320i", res.Rows[0].Fields["CarName"])
}

func TestParse_SkipsBlankLines(t *testing.T) {
	text := "car_ID,CarName\n\n1,a b\n   \n2,c d\n\n"

	res := Parse(text)

	require.Len(t, res.Rows, 2)
	assert.Equal(t, 3, res.Rows[0].Line)
	assert.Equal(t, 5, res.Rows[1].Line)
}

func TestParse_MissingTrailingFields(t *testing.T) {
	res := Parse("car_ID,CarName,fueltype,horsepower\n4,honda civic\n")

	require.Len(t, res.Rows, 1)
	row := res.Rows[0]
	assert.Equal(t, "", row.Fields["fueltype"])
	assert.Equal(t, float64(0), row.Fields["horsepower"])
	assert.Empty(t, res.Warnings)
}

func TestParse_ExtraFieldsIgnored(t *testing.T) {
	res := Parse("car_ID,CarName\n5,mazda rx3,unexpected,values\n")

	require.Len(t, res.Rows, 1)
	assert.Len(t, res.Rows[0].Fields, 2)
}

func TestParse_EmptyAndHeaderOnly(t *testing.T) {
	assert.Empty(t, Parse("").Rows)
	assert.Empty(t, Parse("car_ID,CarName").Rows)
	assert.Empty(t, Parse("car_ID,CarName\n\n\n").Rows)
}

func TestRawRow_Accessors(t *testing.T) {
	row := RawRow{Fields: map[string]interface{}{
		"CarName": "volvo 245",
		"car_ID":  float64(12),
	}}

	assert.Equal(t, "volvo 245", row.String("CarName"))
	assert.Equal(t, "12", row.String("car_ID"))
	assert.Equal(t, "", row.String("missing"))
	assert.Equal(t, float64(12), row.Number("car_ID"))
	assert.Equal(t, float64(0), row.Number("CarName"))
}
