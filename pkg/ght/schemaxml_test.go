package ght

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaXMLRoundTrip(t *testing.T) {
	s := testSchema(t)

	doc, err := SchemaToXML(s)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "Intensity")

	back, err := SchemaFromXML(doc)
	require.NoError(t, err)
	assert.True(t, s.Same(back))
}

func TestSchemaFromXMLRejectsUnknownInterpretation(t *testing.T) {
	doc := []byte(`<pc:PointCloudSchema xmlns:pc="http://pointcloud.org/schemas/PC/">
		<pc:dimension>
			<pc:position>0</pc:position>
			<pc:size>8</pc:size>
			<pc:name>X</pc:name>
			<pc:interpretation>not_a_type</pc:interpretation>
		</pc:dimension>
	</pc:PointCloudSchema>`)
	_, err := SchemaFromXML(doc)
	require.Error(t, err)
	assert.Equal(t, KindSchema, ClassifyError(err))
}
