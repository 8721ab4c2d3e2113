package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductForm_Input(t *testing.T) {
	in, err := ProductForm{Name: " Collar ", Price: "11.50", Stock: "3"}.Input()
	require.NoError(t, err)
	assert.Equal(t, "Collar", in.Name)
	assert.InDelta(t, 11.5, in.Price, 1e-9)
	assert.Equal(t, 3, in.Stock)

	for _, f := range []ProductForm{
		{Price: "1", Stock: "1"},
		{Name: "x", Stock: "1"},
		{Name: "x", Price: "1"},
		{Name: "x", Price: "abc", Stock: "1"},
		{Name: "x", Price: "1", Stock: "-1"},
	} {
		_, err := f.Input()
		var ve *ValidationError
		assert.True(t, errors.As(err, &ve), "%+v", f)
	}
}

func TestDogForm_BlankAgeIsZero(t *testing.T) {
	in, err := DogForm{Name: "Luna", Breed: "Labrador"}.Input()
	require.NoError(t, err)
	assert.Zero(t, in.Age)

	_, err = DogForm{Name: "Luna"}.Input()
	assert.Error(t, err)
}

func TestAdoptionForm_Message(t *testing.T) {
	f := AdoptionForm{Housing: "Casa", ChildrenUnder10: "No", Yard: "Sí", MoreThanTwoDogs: "No", Reason: "Compañía"}
	require.True(t, f.complete())

	want := "Tipo de vivienda: Casa\n" +
		"¿Tiene niños menores de 10 años?: No\n" +
		"¿Tiene patio?: Sí\n" +
		"¿Tiene más de 2 perros?: No\n" +
		"Motivo: Compañía"
	assert.Equal(t, want, f.Message())

	f.Yard = ""
	assert.False(t, f.complete())
}
