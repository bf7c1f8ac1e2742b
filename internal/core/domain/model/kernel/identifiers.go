package kernel

// OrderID identifies an Order aggregate.
type OrderID struct {
	id UUID
}

func NewOrderID() OrderID {
	return OrderID{id: NewUUID()}
}

func OrderIDFromString(s string) (OrderID, error) {
	id, err := UUIDFromString(s)
	if err != nil {
		return OrderID{}, err
	}
	return OrderID{id: id}, nil
}

// OrderIDFromUUID wraps an already validated UUID, typically one read back from storage.
func OrderIDFromUUID(id UUID) (OrderID, error) {
	if err := id.Validate(); err != nil {
		return OrderID{}, err
	}
	return OrderID{id: id}, nil
}

func (o OrderID) UUID() UUID                 { return o.id }
func (o OrderID) String() string             { return o.id.String() }
func (o OrderID) IsEqual(other OrderID) bool { return o.id.IsEqual(other.id) }
func (o OrderID) Validate() error            { return o.id.Validate() }

// CustomerID identifies the customer owning an order.
type CustomerID struct {
	id UUID
}

func NewCustomerID() CustomerID {
	return CustomerID{id: NewUUID()}
}

func CustomerIDFromString(s string) (CustomerID, error) {
	id, err := UUIDFromString(s)
	if err != nil {
		return CustomerID{}, err
	}
	return CustomerID{id: id}, nil
}

func CustomerIDFromUUID(id UUID) (CustomerID, error) {
	if err := id.Validate(); err != nil {
		return CustomerID{}, err
	}
	return CustomerID{id: id}, nil
}

func (c CustomerID) UUID() UUID                    { return c.id }
func (c CustomerID) String() string                { return c.id.String() }
func (c CustomerID) IsEqual(other CustomerID) bool { return c.id.IsEqual(other.id) }
func (c CustomerID) Validate() error               { return c.id.Validate() }

// ProductID identifies a catalog product referenced by order lines.
type ProductID struct {
	id UUID
}

func NewProductID() ProductID {
	return ProductID{id: NewUUID()}
}

func ProductIDFromString(s string) (ProductID, error) {
	id, err := UUIDFromString(s)
	if err != nil {
		return ProductID{}, err
	}
	return ProductID{id: id}, nil
}

func ProductIDFromUUID(id UUID) (ProductID, error) {
	if err := id.Validate(); err != nil {
		return ProductID{}, err
	}
	return ProductID{id: id}, nil
}

func (p ProductID) UUID() UUID                   { return p.id }
func (p ProductID) String() string               { return p.id.String() }
func (p ProductID) IsEqual(other ProductID) bool { return p.id.IsEqual(other.id) }
func (p ProductID) Validate() error              { return p.id.Validate() }
