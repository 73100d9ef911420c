// Package dian contiene catálogos y reglas compartidas de facturación
// electrónica DIAN (Colombia), Anexo Técnico 1.9: tipos de identificación,
// formas y medios de pago, tipos de impuesto y el algoritmo del dígito de
// verificación del NIT.
package dian

// =============================================================================
// Tabla 3 - Tipos de identificación (Anexo 1.9 - 13.2.1)
// =============================================================================

const (
	IdentificationTypeNIT = "31" // NIT - requiere dígito de verificación
	IdentificationTypeCC  = "13" // Cédula de ciudadanía
	IdentificationTypeCE  = "22" // Cédula de extranjería
	IdentificationTypePas = "41" // Pasaporte
)

// ValidIdentificationTypeCodes códigos de tipo de identificación aceptados.
var ValidIdentificationTypeCodes = map[string]bool{
	IdentificationTypeNIT: true,
	IdentificationTypeCC:  true,
	IdentificationTypeCE:  true,
	IdentificationTypePas: true,
}

// =============================================================================
// Tabla 14 - Forma de Pago (Anexo 1.9 - 13.3.4.1)
// =============================================================================

const (
	PaymentFormContado = "1" // Contado
	PaymentFormCredito = "2" // Crédito
)

// ValidPaymentFormCodes formas de pago válidas.
var ValidPaymentFormCodes = map[string]bool{
	PaymentFormContado: true,
	PaymentFormCredito: true,
}

// =============================================================================
// Tabla 13 - Medios de Pago (Anexo 1.9 - 13.3.4.2) - códigos de uso frecuente
// =============================================================================

const (
	PaymentMethodEfectivo       = "10" // Efectivo
	PaymentMethodConsignacion   = "42" // Consignación bancaria
	PaymentMethodTransferencia  = "47" // Transferencia Débito Bancaria
	PaymentMethodTarjetaCredito = "48" // Tarjeta Crédito
	PaymentMethodTarjetaDebito  = "49" // Tarjeta Débito
)

// ValidPaymentMethodCodes medios de pago aceptados.
var ValidPaymentMethodCodes = map[string]bool{
	PaymentMethodEfectivo:       true,
	PaymentMethodConsignacion:   true,
	PaymentMethodTransferencia:  true,
	PaymentMethodTarjetaCredito: true,
	PaymentMethodTarjetaDebito:  true,
}

// =============================================================================
// Tabla 11 - Tipos de Impuesto (Anexo 1.9 - 13.2.2)
// =============================================================================

const (
	TaxCodeIVA = "01" // IVA
	TaxCodeINC = "04" // Impuesto Nacional al Consumo
)

// =============================================================================
// Tabla 6 - Unidades de Medida (Anexo 1.9 - 13.3.6 @unitCode)
// =============================================================================

const (
	UnitUnit     = "94"  // Unidad
	UnitKilogram = "KGM" // Kilogramo
	UnitLitre    = "LTR" // Litro
	UnitMetre    = "MTR" // Metro
	UnitHour     = "HUR" // Hora
	UnitDay      = "DAY" // Día
)

// ValidMeasurementUnitCodes códigos de unidad de medida de uso común.
var ValidMeasurementUnitCodes = map[string]bool{
	UnitUnit: true, UnitKilogram: true, UnitLitre: true,
	UnitMetre: true, UnitHour: true, UnitDay: true,
}
