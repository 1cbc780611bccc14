package rbsp

import "fmt"

// LumpType is the index of a lump in the header's lump table.
type LumpType int

// Lumps the converter needs to know about. Everything else is copied through.
const (
	LumpEntities                   LumpType = 0x00
	LumpPlanes                     LumpType = 0x01
	LumpTextureData                LumpType = 0x02
	LumpVertices                   LumpType = 0x03
	LumpModels                     LumpType = 0x0E
	LumpSurfaceNames               LumpType = 0x0F
	LumpContentsMasks              LumpType = 0x10
	LumpSurfaceProperties          LumpType = 0x11
	LumpBVHNodes                   LumpType = 0x12
	LumpBVHLeafData                LumpType = 0x13
	LumpPackedVertices             LumpType = 0x14
	LumpEntityPartitions           LumpType = 0x18
	LumpVertexNormals              LumpType = 0x1E
	LumpGameLump                   LumpType = 0x23
	LumpPakfile                    LumpType = 0x28
	LumpCubemaps                   LumpType = 0x2A
	LumpWorldLights                LumpType = 0x36
	LumpMeshIndices                LumpType = 0x4F
	LumpMeshes                     LumpType = 0x50
	LumpMaterialSorts              LumpType = 0x52
	LumpLightmapHeaders            LumpType = 0x53
	LumpLightmapDataSky            LumpType = 0x62
	LumpLightProbes                LumpType = 0x65
	LumpLightmapDataRealTimeLights LumpType = 0x69
)

var lumpNames = map[LumpType]string{
	LumpEntities:                   "ENTITIES",
	LumpPlanes:                     "PLANES",
	LumpTextureData:                "TEXTURE_DATA",
	LumpVertices:                   "VERTICES",
	LumpModels:                     "MODELS",
	LumpSurfaceNames:               "SURFACE_NAMES",
	LumpContentsMasks:              "CONTENTS_MASKS",
	LumpSurfaceProperties:          "SURFACE_PROPERTIES",
	LumpBVHNodes:                   "BVH_NODES",
	LumpBVHLeafData:                "BVH_LEAF_DATA",
	LumpPackedVertices:             "PACKED_VERTICES",
	LumpEntityPartitions:           "ENTITY_PARTITIONS",
	LumpVertexNormals:              "VERTEX_NORMALS",
	LumpGameLump:                   "GAME_LUMP",
	LumpPakfile:                    "PAKFILE",
	LumpCubemaps:                   "CUBEMAPS",
	LumpWorldLights:                "WORLD_LIGHTS",
	LumpMeshIndices:                "MESH_INDICES",
	LumpMeshes:                     "MESHES",
	LumpMaterialSorts:              "MATERIAL_SORTS",
	LumpLightmapHeaders:            "LIGHTMAP_HEADERS",
	LumpLightmapDataSky:            "LIGHTMAP_DATA_SKY",
	LumpLightProbes:                "LIGHTPROBES",
	LumpLightmapDataRealTimeLights: "LIGHTMAP_DATA_REAL_TIME_LIGHTS",
}

func (t LumpType) String() string {
	if name, ok := lumpNames[t]; ok {
		return name
	}
	return fmt.Sprintf("LUMP_%04X", int(t))
}
