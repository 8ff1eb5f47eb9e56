package books

// Field names as they appear in the dataset header rows. Concepts with more
// than one accepted spelling list them in lookup order.
const (
	FieldISBN      = "ISBN"
	FieldISBNLower = "isbn"
	FieldTitle     = "titulo"
	FieldAuthor    = "autor"
	FieldPublisher = "editorial"
	FieldCover     = "imagen_cubierta"
	FieldSummary   = "texto_resumen"
	FieldPrice     = "precio_venta_publico"
	FieldLanguage  = "idioma"
	FieldYear      = "año_public"
	FieldCP        = "CP"
	FieldCPLower   = "cp"
)

var (
	identifierFields = []string{FieldISBN, FieldISBNLower}
	categoryFields   = []string{FieldCP, FieldCPLower}
)
