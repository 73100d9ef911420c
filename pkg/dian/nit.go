package dian

import (
	"errors"
	"fmt"
)

// ErrInvalidIdentification indica un número de identificación malformado
// (caracteres no numéricos o vacío): no tiene checksum con sentido.
var ErrInvalidIdentification = errors.New("dian: número de identificación inválido")

// Pesos para el cálculo del dígito de verificación del NIT (Orden
// Administrativa 4 de 1989, DIAN). Se aplican a los dígitos del NIT de
// DERECHA a izquierda; soporta identificaciones de hasta 15 dígitos.
var nitWeights = [15]int{3, 7, 13, 17, 19, 23, 29, 37, 41, 43, 47, 53, 59, 67, 71}

// ComputeVerificationDigit calcula el dígito de verificación (0-9) para un
// número de identificación. Acepta puntos y guiones como separadores
// ("900.694.948" o "900694948"); cualquier otro carácter retorna
// ErrInvalidIdentification. El número NO debe incluir el DV.
func ComputeVerificationDigit(identification string) (int, error) {
	digits, err := cleanIdentification(identification)
	if err != nil {
		return 0, err
	}
	if len(digits) > len(nitWeights) {
		return 0, fmt.Errorf("%w: máximo %d dígitos, se recibieron %d", ErrInvalidIdentification, len(nitWeights), len(digits))
	}
	var sum int
	for i := 0; i < len(digits); i++ {
		d := int(digits[len(digits)-1-i] - '0')
		sum += d * nitWeights[i]
	}
	remainder := sum % 11
	if remainder == 0 || remainder == 1 {
		return remainder, nil
	}
	return 11 - remainder, nil
}

// ValidateNIT valida que un NIT que YA incluye su dígito de verificación
// ("900694948-9", "900.694.948-9" o "9006949489") sea consistente con el
// algoritmo módulo 11 de la DIAN.
func ValidateNIT(taxID string) error {
	digits, err := cleanIdentification(taxID)
	if err != nil {
		return err
	}
	if len(digits) < 2 {
		return fmt.Errorf("%w: el NIT debe incluir dígito de verificación", ErrInvalidIdentification)
	}
	base := digits[:len(digits)-1]
	got := int(digits[len(digits)-1] - '0')
	expected, err := ComputeVerificationDigit(base)
	if err != nil {
		return err
	}
	if got != expected {
		return fmt.Errorf("dian: dígito de verificación inválido: esperado %d, recibido %d", expected, got)
	}
	return nil
}

// cleanIdentification elimina separadores permitidos (puntos, guiones y
// espacios) y verifica que solo queden dígitos.
func cleanIdentification(s string) (string, error) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			out = append(out, c)
		case c == '.' || c == '-' || c == ' ':
			// separador permitido
		default:
			return "", fmt.Errorf("%w: carácter %q no permitido", ErrInvalidIdentification, c)
		}
	}
	if len(out) == 0 {
		return "", fmt.Errorf("%w: vacío", ErrInvalidIdentification)
	}
	return string(out), nil
}
