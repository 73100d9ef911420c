package dian_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velia-co/crm-api/pkg/dian"
)

// ──────────────────────────────────────────────────────────────────────────────
// TestComputeVerificationDigit_Goldens valida el algoritmo módulo 11 de la
// DIAN contra valores de referencia calculados a mano con la tabla de pesos
// oficial (3,7,13,17,19,23,29,37,41,... de derecha a izquierda).
//
// 800197268-4 es el NIT real de la DIAN: si este vector falla, el algoritmo
// está mal y ninguna factura pasaría validación en producción.
// ──────────────────────────────────────────────────────────────────────────────
func TestComputeVerificationDigit_Goldens(t *testing.T) {
	cases := []struct {
		nit  string
		want int
	}{
		{"800197268", 4}, // NIT de la DIAN
		{"900694948", 9},
		{"830055758", 1},
		{"900373115", 3},
		{"900000070", 0}, // residuo 0 → DV 0
		{"900000040", 1}, // residuo 1 → DV 1
	}
	for _, tc := range cases {
		got, err := dian.ComputeVerificationDigit(tc.nit)
		require.NoError(t, err, "NIT %s no debe producir error", tc.nit)
		assert.Equal(t, tc.want, got, "DV incorrecto para NIT %s", tc.nit)
	}
}

// TestComputeVerificationDigit_Separadores verifica que puntos y guiones se
// ignoran: "900.694.948" y "900694948" producen el mismo DV.
func TestComputeVerificationDigit_Separadores(t *testing.T) {
	plain, err := dian.ComputeVerificationDigit("900694948")
	require.NoError(t, err)
	dotted, err := dian.ComputeVerificationDigit("900.694.948")
	require.NoError(t, err)
	assert.Equal(t, plain, dotted)
}

// TestComputeVerificationDigit_Idempotente: el mismo input siempre produce el
// mismo dígito.
func TestComputeVerificationDigit_Idempotente(t *testing.T) {
	d1, err1 := dian.ComputeVerificationDigit("900694948")
	d2, err2 := dian.ComputeVerificationDigit("900694948")
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, d1, d2)
	assert.GreaterOrEqual(t, d1, 0)
	assert.LessOrEqual(t, d1, 9)
}

// TestComputeVerificationDigit_EntradaInvalida: entradas no numéricas fallan
// con ErrInvalidIdentification en lugar de devolver un dígito equivocado.
func TestComputeVerificationDigit_EntradaInvalida(t *testing.T) {
	for _, bad := range []string{"", "ABC", "90069X948", "  ", "12345678901234567890"} {
		_, err := dian.ComputeVerificationDigit(bad)
		assert.ErrorIs(t, err, dian.ErrInvalidIdentification, "input %q debe fallar", bad)
	}
}

// TestValidateNIT acepta NITs completos con DV correcto y rechaza DV errado.
func TestValidateNIT(t *testing.T) {
	require.NoError(t, dian.ValidateNIT("800197268-4"))
	require.NoError(t, dian.ValidateNIT("800.197.268-4"))
	require.NoError(t, dian.ValidateNIT("8001972684"))

	err := dian.ValidateNIT("800197268-5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "esperado 4")

	assert.ErrorIs(t, dian.ValidateNIT("4"), dian.ErrInvalidIdentification)
}
